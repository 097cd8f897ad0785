package stream

// SkipLast forwards every value except the last n. Values are held back in
// a buffer of n and released as newer values push them out; whatever is
// still buffered at completion is discarded. With n <= 0 every value is
// forwarded.
func SkipLast[T any](n int) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		if n <= 0 {
			return source
		}
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &skipLastObserver[T]{relay: relay[T]{down}, window: newRing[T](n)}
		})
	}
}

type skipLastObserver[T any] struct {
	relay[T]
	window *ring[T]
}

func (o *skipLastObserver[T]) OnNext(v T) {
	if evicted, ok := o.window.push(v); ok {
		o.down.Next(evicted)
	}
}

// TakeLast emits the last n values, in order, once the source completes.
// Nothing is emitted before completion, and an error discards the buffer.
// With n <= 0 it completes without subscribing to the source.
func TakeLast[T any](n int) Operator[T, T] {
	return func(source *Producer[T]) *Producer[T] {
		if n <= 0 {
			return Empty[T]()
		}
		return lift(source, func(down Subscriber[T]) Observer[T] {
			return &takeLastObserver[T]{down: down, window: newRing[T](n)}
		})
	}
}

type takeLastObserver[T any] struct {
	down   Subscriber[T]
	window *ring[T]
}

func (o *takeLastObserver[T]) OnNext(v T) {
	o.window.push(v)
}

func (o *takeLastObserver[T]) OnError(err error) {
	o.window = nil
	o.down.Error(err)
}

func (o *takeLastObserver[T]) OnComplete() {
	for _, v := range o.window.values() {
		if o.down.Closed() {
			return
		}
		o.down.Next(v)
	}
	o.down.Complete()
}
