package stream

// Operator state below lives in the per-subscription observer. The upstream
// subscriber serializes delivery, so it needs no locking.

// Distinct forwards each value the first time it is seen.
func Distinct[T comparable]() Operator[T, T] {
	return DistinctBy(func(v T) T { return v })
}

// DistinctBy forwards a value when its key has not been seen before.
// The seen set grows with the number of distinct keys.
func DistinctBy[T any, K comparable](key func(T) K) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &distinctObserver[T, K]{relay: relay[T]{down}, key: key, seen: make(map[K]struct{})}
		})
	}
}

type distinctObserver[T any, K comparable] struct {
	relay[T]
	key  func(T) K
	seen map[K]struct{}
}

func (o *distinctObserver[T, K]) OnNext(v T) {
	k := o.key(v)
	if _, dup := o.seen[k]; dup {
		return
	}
	o.seen[k] = struct{}{}
	o.down.Next(v)
}

// DistinctUntilChanged drops values equal to the one immediately before.
func DistinctUntilChanged[T comparable]() Operator[T, T] {
	return DistinctUntilChangedFunc(func(a, b T) bool { return a == b })
}

// DistinctUntilChangedFunc is DistinctUntilChanged with a custom equality.
func DistinctUntilChangedFunc[T any](equal func(prev, next T) bool) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &untilChangedObserver[T]{relay: relay[T]{down}, equal: equal}
		})
	}
}

type untilChangedObserver[T any] struct {
	relay[T]
	equal func(prev, next T) bool
	last  T
	has   bool
}

func (o *untilChangedObserver[T]) OnNext(v T) {
	if o.has && o.equal(o.last, v) {
		return
	}
	o.last, o.has = v, true
	o.down.Next(v)
}

// Skip drops the first n values.
func Skip[T any](n int) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		if n <= 0 {
			return source
		}
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &skipObserver[T]{relay: relay[T]{down}, remaining: n}
		})
	}
}

type skipObserver[T any] struct {
	relay[T]
	remaining int
}

func (o *skipObserver[T]) OnNext(v T) {
	if o.remaining > 0 {
		o.remaining--
		return
	}
	o.down.Next(v)
}

// Take forwards the first n values, then completes and cancels the source.
// With n <= 0 it completes without subscribing to the source at all.
func Take[T any](n int) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		if n <= 0 {
			return Empty[T]()
		}
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &takeObserver[T]{relay: relay[T]{down}, remaining: n}
		})
	}
}

type takeObserver[T any] struct {
	relay[T]
	remaining int
}

func (o *takeObserver[T]) OnNext(v T) {
	if o.remaining <= 0 {
		return
	}
	o.remaining--
	o.down.Next(v)
	if o.remaining == 0 {
		o.down.Complete()
	}
}
