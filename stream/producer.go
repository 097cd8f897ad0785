package stream

import (
	"context"
)

// Producer is a cold, repeatable source of values. Each subscription runs
// the emission logic from the start with its own state.
type Producer[T any] struct {
	onSubscribe func(Subscriber[T])
}

// Create builds a producer from an emission function. The function runs once
// per subscription and should stop emitting once the subscriber is Closed.
func Create[T any](fn func(s Subscriber[T])) *Producer[T] {
	return &Producer[T]{onSubscribe: fn}
}

// Subscribe attaches an Observer and runs the producer with a background
// context. Synchronous sources have delivered every signal by the time
// Subscribe returns.
func (p *Producer[T]) Subscribe(o Observer[T]) Subscription {
	return p.subscribe(o, nil)
}

// SubscribeFunc subscribes with plain callbacks; any of them may be nil.
func (p *Producer[T]) SubscribeFunc(onNext func(T), onComplete func(), onError func(error)) Subscription {
	return p.Subscribe(Funcs[T]{Next: onNext, Complete: onComplete, Error: onError})
}

// SubscribeContext subscribes and cancels the subscription when ctx is done.
// ctx is also the parent of every upstream subscription, so spans opened by
// WithTracing nest under the caller's span.
func (p *Producer[T]) SubscribeContext(ctx context.Context, o Observer[T]) Subscription {
	s := newSubscriber(ctx, o)
	if ctx.Err() != nil {
		s.Cancel()
		return s
	}
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, s.Cancel)
		s.Add(func() { stop() })
	}
	p.run(s)
	return s
}

// subscribe hands the new subscription to owner before the producer runs, so
// cancelling the owner also reaches a source that is still emitting.
func (p *Producer[T]) subscribe(o Observer[T], owner teardownAdder) Subscription {
	ctx := context.Background()
	if owner != nil {
		ctx = owner.Context()
	}
	s := newSubscriber(ctx, o)
	if owner != nil {
		owner.Add(s.Cancel)
	}
	p.run(s)
	return s
}

func (p *Producer[T]) run(s *subscriber[T]) {
	if s.Closed() {
		return
	}
	p.onSubscribe(s)
}
