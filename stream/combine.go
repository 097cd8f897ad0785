package stream

import (
	"sync"
	"sync/atomic"

	"github.com/kbukum/rxkit/errors"
)

// Merge subscribes to every input and forwards their values in the order
// they arrive. It completes after all inputs complete and fails on the first
// error, cancelling the other inputs. Synchronous inputs are drained one
// after another in argument order. With no inputs it behaves like Empty.
func Merge[T any](inputs ...*Producer[T]) *Producer[T] {
	if len(inputs) == 0 {
		return Empty[T]()
	}
	return Create(func(down Subscriber[T]) {
		active := new(atomic.Int64)
		active.Store(int64(len(inputs)))
		for _, in := range inputs {
			if down.Closed() {
				return
			}
			in.subscribe(&mergeObserver[T]{relay: relay[T]{down}, active: active}, down)
		}
	})
}

type mergeObserver[T any] struct {
	relay[T]
	active *atomic.Int64
}

func (o *mergeObserver[T]) OnNext(v T) {
	o.down.Next(v)
}

func (o *mergeObserver[T]) OnComplete() {
	if o.active.Add(-1) == 0 {
		o.down.Complete()
	}
}

// Pair is the element type of Zip2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs the i-th values of every input into one slice. It completes as
// soon as any completed input has no buffered values left, cancelling the
// rest. With no inputs it behaves like Empty.
func Zip[T any](inputs ...*Producer[T]) *Producer[[]T] {
	return ZipWith(func(row []T) ([]T, error) { return row, nil }, inputs...)
}

// ZipWith is Zip with a combining function applied to each row.
// A combine error terminates the stream with PROJECTION_FAILED.
func ZipWith[T, U any](combine func(row []T) (U, error), inputs ...*Producer[T]) *Producer[U] {
	if len(inputs) == 0 {
		return Empty[U]()
	}
	return Create(func(down Subscriber[U]) {
		z := &zipState[T, U]{
			down:    down,
			combine: combine,
			pending: make([][]T, len(inputs)),
			done:    make([]bool, len(inputs)),
		}
		for i, in := range inputs {
			if down.Closed() {
				return
			}
			in.subscribe(&zipObserver[T, U]{state: z, index: i}, down)
		}
	})
}

// Zip2 pairs two producers of different element types.
func Zip2[A, B any](a *Producer[A], b *Producer[B]) *Producer[Pair[A, B]] {
	return ZipWith(func(row []any) (Pair[A, B], error) {
		first, _ := row[0].(A)
		second, _ := row[1].(B)
		return Pair[A, B]{First: first, Second: second}, nil
	}, boxed(a), boxed(b))
}

func boxed[T any](p *Producer[T]) *Producer[any] {
	return Map(func(v T) (any, error) { return v, nil })(p)
}

// zipState is shared by the observers of every input, which may deliver
// from different goroutines.
type zipState[T, U any] struct {
	down    Subscriber[U]
	combine func([]T) (U, error)

	mu       sync.Mutex
	pending  [][]T
	done     []bool
	finished bool
}

func (z *zipState[T, U]) next(i int, v T) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.finished {
		return
	}

	z.pending[i] = append(z.pending[i], v)
	for _, queue := range z.pending {
		if len(queue) == 0 {
			return
		}
	}

	var zero T
	row := make([]T, len(z.pending))
	for j, queue := range z.pending {
		row[j] = queue[0]
		queue[0] = zero
		z.pending[j] = queue[1:]
	}
	out, err := z.combine(row)
	if err != nil {
		z.finished = true
		z.down.Error(errors.Projection("zip", err))
		return
	}
	z.down.Next(out)
	z.completeIfExhausted()
}

func (z *zipState[T, U]) complete(i int) {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.finished {
		return
	}
	z.done[i] = true
	z.completeIfExhausted()
}

// completeIfExhausted must be called with mu held.
func (z *zipState[T, U]) completeIfExhausted() {
	for j, ended := range z.done {
		if ended && len(z.pending[j]) == 0 {
			z.finished = true
			z.pending = nil
			z.down.Complete()
			return
		}
	}
}

type zipObserver[T, U any] struct {
	state *zipState[T, U]
	index int
}

func (o *zipObserver[T, U]) OnNext(v T)        { o.state.next(o.index, v) }
func (o *zipObserver[T, U]) OnError(err error) { o.state.down.Error(err) }
func (o *zipObserver[T, U]) OnComplete()       { o.state.complete(o.index) }
