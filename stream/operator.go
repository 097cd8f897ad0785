package stream

// Operator transforms one producer into another. Operators are pure
// builders: nothing runs until the returned producer is subscribed.
type Operator[T, U any] func(*Producer[T]) *Producer[U]

// lift subscribes to source with an observer built per subscription, so
// operator state is never shared between subscriptions.
func lift[T, U any](source *Producer[T], newObserver func(down Subscriber[U]) Observer[T]) *Producer[U] {
	return Create(func(down Subscriber[U]) {
		source.subscribe(newObserver(down), down)
	})
}

// relay forwards terminal signals downstream unchanged.
type relay[U any] struct {
	down Subscriber[U]
}

func (r relay[U]) OnError(err error) { r.down.Error(err) }
func (r relay[U]) OnComplete()       { r.down.Complete() }
