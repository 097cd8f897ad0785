package stream

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/kbukum/rxkit/errors"
)

func TestMap(t *testing.T) {
	p := Map(func(s string) (int, error) { return len(s), nil })(Of("apple", "kiwi"))
	assertValues(t, collect(t, p), []int{5, 4})
}

func TestMap_ErrorCancelsUpstream(t *testing.T) {
	src := &counted{}
	p := Map(func(v int) (int, error) {
		if v == 2 {
			return 0, stderrors.New("bruised")
		}
		return v, nil
	})(src.producer(5))

	log, err := Materialize(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0].Value != 1 || log[1].Kind != KindError {
		t.Fatalf("expected [next(1) error], got %v", log)
	}
	if !errors.IsCode(log[1].Err, errors.ErrCodeProjection) {
		t.Errorf("expected PROJECTION_FAILED, got %v", log[1].Err)
	}
	if src.pushed != 2 {
		t.Errorf("expected upstream cancelled after 2 pushes, pushed %d", src.pushed)
	}
}

func TestFilter(t *testing.T) {
	fresh := Filter(func(s string) bool { return !strings.Contains(s, "old") })
	p := fresh(Of("apple", "old-apple", "banana"))
	assertValues(t, collect(t, p), []string{"apple", "banana"})
}

func TestTryFilter_Error(t *testing.T) {
	p := TryFilter(func(v int) (bool, error) {
		if v == 3 {
			return false, stderrors.New("cannot judge")
		}
		return v%2 == 1, nil
	})(Of(1, 2, 3, 4))

	got, err := Collect(context.Background(), p)
	if !errors.IsCode(err, errors.ErrCodeProjection) {
		t.Fatalf("expected PROJECTION_FAILED, got %v", err)
	}
	assertValues(t, got, []int{1})
}

func TestTap(t *testing.T) {
	var seen []int
	p := Tap(func(v int) { seen = append(seen, v) })(Of(1, 2))
	assertValues(t, collect(t, p), []int{1, 2})
	assertValues(t, seen, []int{1, 2})
}

func TestErrorPassesThroughUnchanged(t *testing.T) {
	boom := stderrors.New("boom")
	p := Pipe2(Throw[int](boom),
		Map(func(v int) (int, error) { return v, nil }),
		Filter(func(int) bool { return true }),
	)
	_, err := Collect(context.Background(), p)
	if !errors.IsCode(err, errors.ErrCodeUpstream) || !stderrors.Is(err, boom) {
		t.Errorf("expected upstream boom, got %v", err)
	}
}
