package stream

import (
	"github.com/kbukum/rxkit/errors"
)

// Map applies project to every value. A projection error terminates the
// stream with a PROJECTION_FAILED error and cancels the source.
func Map[T, U any](project func(T) (U, error)) Operator[T, U] {
	return func(source *Producer[T]) *Producer[U] {
		return lift(source, func(down Subscriber[U]) Observer[T] {
			return &mapObserver[T, U]{relay: relay[U]{down}, project: project}
		})
	}
}

type mapObserver[T, U any] struct {
	relay[U]
	project func(T) (U, error)
}

func (o *mapObserver[T, U]) OnNext(v T) {
	out, err := o.project(v)
	if err != nil {
		o.down.Error(errors.Projection("map", err))
		return
	}
	o.down.Next(out)
}

// Filter forwards the values for which keep returns true.
func Filter[T any](keep func(T) bool) Operator[T, T] {
	return TryFilter(func(v T) (bool, error) { return keep(v), nil })
}

// TryFilter is Filter with a fallible predicate.
func TryFilter[T any](keep func(T) (bool, error)) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &filterObserver[T]{relay: relay[T]{down}, keep: keep}
		})
	}
}

type filterObserver[T any] struct {
	relay[T]
	keep func(T) (bool, error)
}

func (o *filterObserver[T]) OnNext(v T) {
	ok, err := o.keep(v)
	if err != nil {
		o.down.Error(errors.Projection("filter", err))
		return
	}
	if ok {
		o.down.Next(v)
	}
}

// Tap calls fn with every value before forwarding it unchanged.
func Tap[T any](fn func(T)) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return tapObserver[T]{relay: relay[T]{down}, fn: fn}
		})
	}
}

type tapObserver[T any] struct {
	relay[T]
	fn func(T)
}

func (o tapObserver[T]) OnNext(v T) {
	o.fn(v)
	o.down.Next(v)
}
