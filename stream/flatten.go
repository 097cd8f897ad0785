package stream

import (
	"sync"
	"sync/atomic"

	"github.com/kbukum/rxkit/errors"
)

// Phases of one inner subscription, used to tell a synchronous completion
// (handled by the subscribing loop) from a later asynchronous one (which
// restarts the loop itself).
const (
	phaseRunning int32 = iota
	phaseCompletedInline
	phaseDetached
)

// ConcatMap maps every value to an inner producer and emits the inner
// producers' values one inner at a time, in source order. Values arriving
// while an inner is active are queued. It completes once the source and the
// last inner have completed; any error ends the whole stream. A nil inner
// producer counts as an empty one.
//
// Inner producers that complete synchronously are drained iteratively, so
// long chains of them do not grow the stack.
func ConcatMap[T, U any](project func(T) (*Producer[U], error)) Operator[T, U] {
	return func(source *Producer[T]) *Producer[U] {
		return Create(func(down Subscriber[U]) {
			c := &concatState[T, U]{down: down, project: project}
			c.inner.ctx = down.Context()
			down.Add(c.inner.Cancel)
			source.subscribe(c, down)
		})
	}
}

// ConcatMapSlice is ConcatMap for a projection that returns plain values.
func ConcatMapSlice[T, U any](project func(T) []U) Operator[T, U] {
	return ConcatMap(func(v T) (*Producer[U], error) {
		return From(project(v)), nil
	})
}

type concatState[T, U any] struct {
	down    Subscriber[U]
	project func(T) (*Producer[U], error)
	inner   serial

	mu        sync.Mutex
	queue     []T
	active    bool
	outerDone bool
}

func (c *concatState[T, U]) OnNext(v T) {
	c.mu.Lock()
	c.queue = append(c.queue, v)
	if c.active {
		c.mu.Unlock()
		return
	}
	c.active = true
	c.mu.Unlock()
	c.drain()
}

func (c *concatState[T, U]) OnError(err error) {
	c.down.Error(err)
}

func (c *concatState[T, U]) OnComplete() {
	c.mu.Lock()
	c.outerDone = true
	idle := !c.active
	c.mu.Unlock()
	if idle {
		c.down.Complete()
	}
}

func (c *concatState[T, U]) drain() {
	for {
		c.mu.Lock()
		if len(c.queue) == 0 {
			c.active = false
			done := c.outerDone
			c.mu.Unlock()
			if done {
				c.down.Complete()
			}
			return
		}
		var zero T
		v := c.queue[0]
		c.queue[0] = zero
		c.queue = c.queue[1:]
		c.mu.Unlock()

		if c.down.Closed() {
			return
		}
		inner, err := c.project(v)
		if err != nil {
			c.down.Error(errors.Projection("concatMap", err))
			return
		}
		if inner == nil {
			continue
		}

		phase := new(atomic.Int32)
		inner.subscribe(&innerObserver[U]{down: c.down, onComplete: func() {
			if phase.CompareAndSwap(phaseRunning, phaseCompletedInline) {
				return
			}
			c.drain()
		}}, &c.inner)
		if phase.CompareAndSwap(phaseRunning, phaseDetached) {
			return
		}
	}
}

// innerObserver forwards an inner producer's values and errors downstream
// and reports its completion to the owning operator.
type innerObserver[U any] struct {
	down       Subscriber[U]
	onComplete func()
}

func (o *innerObserver[U]) OnNext(v U)        { o.down.Next(v) }
func (o *innerObserver[U]) OnError(err error) { o.down.Error(err) }
func (o *innerObserver[U]) OnComplete()       { o.onComplete() }
