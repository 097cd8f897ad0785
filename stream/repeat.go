package stream

import (
	"sync/atomic"
)

// Repeat subscribes to the source count times in sequence, starting each
// fresh subscription when the previous one completes. An error ends the
// whole stream. With count <= 0 it completes without subscribing.
func Repeat[T any](count int) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		if count <= 0 {
			return Empty[T]()
		}
		return Create(func(down Subscriber[T]) {
			r := &repeatState[T]{source: source, down: down, remaining: count}
			r.current.ctx = down.Context()
			down.Add(r.current.Cancel)
			r.loop()
		})
	}
}

type repeatState[T any] struct {
	source    *Producer[T]
	down      Subscriber[T]
	current   serial
	remaining int
}

func (r *repeatState[T]) loop() {
	for {
		if r.down.Closed() {
			return
		}
		phase := new(atomic.Int32)
		r.source.subscribe(&innerObserver[T]{down: r.down, onComplete: func() {
			r.remaining--
			if r.remaining == 0 {
				r.down.Complete()
				return
			}
			if phase.CompareAndSwap(phaseRunning, phaseCompletedInline) {
				return
			}
			r.loop()
		}}, &r.current)
		if phase.CompareAndSwap(phaseRunning, phaseDetached) {
			return
		}
	}
}
