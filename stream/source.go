package stream

import (
	"iter"

	"github.com/kbukum/rxkit/errors"
)

// From emits the items in order, then completes. It stops early once the
// subscription is cancelled.
func From[T any](items []T) *Producer[T] {
	return Create(func(s Subscriber[T]) {
		for _, item := range items {
			if s.Closed() {
				return
			}
			s.Next(item)
		}
		s.Complete()
	})
}

// Of is From for a literal list of values.
func Of[T any](items ...T) *Producer[T] {
	return From(items)
}

// Empty completes immediately without emitting.
func Empty[T any]() *Producer[T] {
	return Create(func(s Subscriber[T]) {
		s.Complete()
	})
}

// Throw fails immediately with err.
func Throw[T any](err error) *Producer[T] {
	return Create(func(s Subscriber[T]) {
		s.Error(errors.Upstream(err))
	})
}

// FromSeq emits the values of an iterator. Cancellation stops the iteration.
func FromSeq[T any](seq iter.Seq[T]) *Producer[T] {
	return Create(func(s Subscriber[T]) {
		for v := range seq {
			if s.Closed() {
				return
			}
			s.Next(v)
		}
		s.Complete()
	})
}

// Range emits count consecutive integers starting at start.
func Range(start, count int) *Producer[int] {
	return Create(func(s Subscriber[int]) {
		for i := range count {
			if s.Closed() {
				return
			}
			s.Next(start + i)
		}
		s.Complete()
	})
}

// FromChan emits every value received from ch on a background goroutine and
// completes when ch is closed. Cancelling stops the goroutine but leaves ch
// open; the sender owns it.
func FromChan[T any](ch <-chan T) *Producer[T] {
	return Create(func(s Subscriber[T]) {
		stop := make(chan struct{})
		s.Add(func() { close(stop) })
		go func() {
			for {
				select {
				case <-stop:
					return
				case v, ok := <-ch:
					if !ok {
						s.Complete()
						return
					}
					s.Next(v)
				}
			}
		}()
	})
}
