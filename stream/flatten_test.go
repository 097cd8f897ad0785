package stream

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/kbukum/rxkit/errors"
)

func TestConcatMap(t *testing.T) {
	twice := ConcatMapSlice(func(v string) []string { return []string{v, v} })
	assertValues(t, collect(t, twice(Of("a", "b"))), []string{"a", "a", "b", "b"})
}

func TestConcatMap_EmptyInners(t *testing.T) {
	p := ConcatMap(func(v int) (*Producer[int], error) {
		if v%2 == 0 {
			return Empty[int](), nil
		}
		return Of(v), nil
	})(Range(0, 6))
	assertValues(t, collect(t, p), []int{1, 3, 5})
}

func TestConcatMap_NilInnerIsEmpty(t *testing.T) {
	p := ConcatMap(func(v int) (*Producer[int], error) {
		if v == 2 {
			return nil, nil
		}
		return Of(v), nil
	})(Of(1, 2, 3))
	assertValues(t, collect(t, p), []int{1, 3})
}

func TestConcatMap_AsyncInnersStayOrdered(t *testing.T) {
	p := ConcatMap(func(v int) (*Producer[int], error) {
		ch := make(chan int)
		go func() {
			defer close(ch)
			ch <- v * 10
			ch <- v*10 + 1
		}()
		return FromChan(ch), nil
	})(Of(1, 2, 3))
	assertValues(t, collect(t, p), []int{10, 11, 20, 21, 30, 31})
}

func TestConcatMap_ProjectError(t *testing.T) {
	p := ConcatMap(func(v int) (*Producer[int], error) {
		if v == 2 {
			return nil, stderrors.New("no juice")
		}
		return Of(v), nil
	})(Of(1, 2, 3))
	got, err := Collect(context.Background(), p)
	if !errors.IsCode(err, errors.ErrCodeProjection) {
		t.Fatalf("expected PROJECTION_FAILED, got %v", err)
	}
	assertValues(t, got, []int{1})
}

func TestConcatMap_InnerError(t *testing.T) {
	boom := stderrors.New("boom")
	src := &counted{}
	p := ConcatMap(func(v int) (*Producer[int], error) {
		if v == 2 {
			return Throw[int](boom), nil
		}
		return Of(v), nil
	})(src.producer(5))

	got, err := Collect(context.Background(), p)
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	assertValues(t, got, []int{1})
	if src.pushed != 2 {
		t.Errorf("expected outer cancelled after 2 pushes, pushed %d", src.pushed)
	}
}

func TestConcatMap_DeepSynchronousChain(t *testing.T) {
	const n = 100_000
	p := ConcatMapSlice(func(v int) []int { return []int{v} })(Range(0, n))
	if got := collect(t, p); len(got) != n {
		t.Errorf("expected %d values, got %d", n, len(got))
	}
}

func TestRepeat(t *testing.T) {
	assertValues(t, collect(t, Repeat[string](3)(Of("apple"))), []string{"apple", "apple", "apple"})
}

func TestRepeat_NonPositiveDoesNotSubscribe(t *testing.T) {
	for _, count := range []int{0, -1} {
		src := &counted{}
		assertValues(t, collect(t, Repeat[int](count)(src.producer(2))), nil)
		if src.subscribed != 0 {
			t.Errorf("repeat(%d) subscribed to its source", count)
		}
	}
}

func TestRepeat_FreshStatePerRepetition(t *testing.T) {
	p := Pipe(Of("a", "a", "b"), Distinct[string](), Repeat[string](2))
	assertValues(t, collect(t, p), []string{"a", "b", "a", "b"})
}

func TestRepeat_ManySynchronousRepetitions(t *testing.T) {
	const n = 10_000
	if got := collect(t, Repeat[int](n)(Of(1))); len(got) != n {
		t.Errorf("expected %d values, got %d", n, len(got))
	}
}

func TestRepeat_CancelledByTake(t *testing.T) {
	src := &counted{}
	p := Pipe(src.producer(3), Repeat[int](1_000_000), Take[int](5))
	assertValues(t, collect(t, p), []int{1, 2, 3, 1, 2})
	if src.subscribed != 2 {
		t.Errorf("expected 2 subscriptions, got %d", src.subscribed)
	}
}

func TestRepeat_AsyncSource(t *testing.T) {
	p := Repeat[int](3)(Create(func(s Subscriber[int]) {
		go func() {
			s.Next(7)
			s.Complete()
		}()
	}))
	assertValues(t, collect(t, p), []int{7, 7, 7})
}

func TestRepeat_ErrorStops(t *testing.T) {
	runs := 0
	boom := stderrors.New("boom")
	p := Repeat[int](5)(Create(func(s Subscriber[int]) {
		runs++
		s.Next(runs)
		if runs == 2 {
			s.Error(boom)
			return
		}
		s.Complete()
	}))
	got, err := Collect(context.Background(), p)
	if !stderrors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	assertValues(t, got, []int{1, 2})
}
