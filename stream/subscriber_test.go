package stream

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kbukum/rxkit/errors"
)

func TestSubscriber_ReentrantSignalsAreQueued(t *testing.T) {
	var (
		sink  Subscriber[int]
		depth int
		deep  bool
		got   []int
	)
	p := Create(func(s Subscriber[int]) {
		sink = s
		s.Next(1)
		s.Complete()
	})
	p.Subscribe(Funcs[int]{Next: func(v int) {
		depth++
		if depth > 1 {
			deep = true
		}
		got = append(got, v)
		if v == 1 {
			sink.Next(2)
		}
		depth--
	}})

	if deep {
		t.Error("OnNext was entered reentrantly")
	}
	assertValues(t, got, []int{1, 2})
}

func TestSubscriber_ConcurrentSignalsAreSerialized(t *testing.T) {
	const workers, perWorker = 8, 200
	p := Create(func(s Subscriber[int]) {
		var wg sync.WaitGroup
		for w := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range perWorker {
					s.Next(w*perWorker + i)
				}
			}()
		}
		wg.Wait()
		s.Complete()
	})

	var inFlight atomic.Int32
	var overlapped atomic.Bool
	count := 0
	sub := p.Subscribe(Funcs[int]{Next: func(int) {
		if inFlight.Add(1) != 1 {
			overlapped.Store(true)
		}
		count++
		inFlight.Add(-1)
	}})
	<-sub.Done()

	if overlapped.Load() {
		t.Error("observer saw overlapping OnNext calls")
	}
	if count != workers*perWorker {
		t.Errorf("expected %d values, got %d", workers*perWorker, count)
	}
}

func TestSubscriber_InertAfterTerminal(t *testing.T) {
	p := Create(func(s Subscriber[int]) {
		s.Next(1)
		s.Complete()
		s.Next(2)
		s.Error(stderrors.New("late"))
		s.Complete()
	})
	log, err := Materialize(context.Background(), p)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 || log[0].Value != 1 || log[1].Kind != KindComplete {
		t.Errorf("expected [next(1) complete], got %v", log)
	}
}

func TestSubscriber_CancelIsIdempotent(t *testing.T) {
	released := 0
	p := Create(func(s Subscriber[int]) {
		s.Add(func() { released++ })
		s.Next(1)
	})
	var got []int
	sub := p.Subscribe(Funcs[int]{Next: func(v int) { got = append(got, v) }})
	if sub.Closed() {
		t.Fatal("subscription closed before cancel")
	}

	sub.Cancel()
	sub.Cancel()

	if !sub.Closed() {
		t.Error("expected closed after cancel")
	}
	if released != 1 {
		t.Errorf("expected teardown to run once, ran %d times", released)
	}
	select {
	case <-sub.Done():
	default:
		t.Error("expected Done to be closed")
	}
	assertValues(t, got, []int{1})
}

func TestSubscriber_CancelAfterCompleteIsNoop(t *testing.T) {
	completed := 0
	sub := Of(1, 2).SubscribeFunc(nil, func() { completed++ }, nil)
	sub.Cancel()
	if completed != 1 {
		t.Errorf("expected one completion, got %d", completed)
	}
	if !sub.Closed() {
		t.Error("expected closed")
	}
}

func TestSubscriber_AddAfterReleaseRunsImmediately(t *testing.T) {
	var sink Subscriber[int]
	Create(func(s Subscriber[int]) {
		sink = s
		s.Complete()
	}).Subscribe(Funcs[int]{})

	ran := false
	sink.Add(func() { ran = true })
	if !ran {
		t.Error("expected teardown to run immediately")
	}
}

func TestSubscriber_ErrorsAreWrappedAsUpstream(t *testing.T) {
	boom := stderrors.New("boom")
	_, err := Collect(context.Background(), Throw[int](boom))
	if !errors.IsCode(err, errors.ErrCodeUpstream) {
		t.Errorf("expected UPSTREAM_ERROR, got %v", err)
	}
	if !stderrors.Is(err, boom) {
		t.Error("expected cause to be preserved")
	}
}

func TestSubscriber_WrappedAppErrorKeepsContext(t *testing.T) {
	inner := errors.Projection("map", stderrors.New("bad"))
	_, err := Collect(context.Background(), Throw[int](fmt.Errorf("reading batch 7: %w", inner)))
	if !errors.IsCode(err, errors.ErrCodeUpstream) {
		t.Errorf("expected UPSTREAM_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "reading batch 7") {
		t.Errorf("expected source context in %q", err.Error())
	}
	if !stderrors.Is(err, inner) {
		t.Error("expected the wrapped AppError to stay reachable")
	}
}

func TestSubscriber_AppErrorPassesUnchanged(t *testing.T) {
	inner := errors.Projection("map", stderrors.New("bad"))
	_, err := Collect(context.Background(), Throw[int](inner))
	if err != inner {
		t.Errorf("expected the AppError unchanged, got %v", err)
	}
}

func TestSubscriber_ExactlyOneTerminal(t *testing.T) {
	var terminals atomic.Int32
	p := Create(func(s Subscriber[int]) {
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(2)
			go func() { defer wg.Done(); s.Complete() }()
			go func() { defer wg.Done(); s.Error(stderrors.New("x")) }()
		}
		wg.Wait()
	})
	sub := p.Subscribe(Funcs[int]{
		Error:    func(error) { terminals.Add(1) },
		Complete: func() { terminals.Add(1) },
	})
	<-sub.Done()
	if n := terminals.Load(); n != 1 {
		t.Errorf("expected exactly one terminal, got %d", n)
	}
}

func TestCancellationPropagatesUpstream(t *testing.T) {
	src := &counted{}
	p := Pipe2(src.producer(100),
		Map(func(v int) (int, error) { return v * 10, nil }),
		Take[int](3),
	)
	assertValues(t, collect(t, p), []int{10, 20, 30})
	if src.pushed != 3 {
		t.Errorf("expected source to stop after 3 pushes, pushed %d", src.pushed)
	}
}

func TestTakeStopsInfiniteSource(t *testing.T) {
	assertValues(t, collect(t, Take[int](4)(naturals())), []int{0, 1, 2, 3})
}

func TestSubscribeContext_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &counted{}
	sub := src.producer(3).SubscribeContext(ctx, Funcs[int]{})
	<-sub.Done()
	if src.subscribed != 0 {
		t.Error("expected producer not to run for a cancelled context")
	}
}
