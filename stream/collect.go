package stream

import (
	"context"
	"sync"

	"github.com/kbukum/rxkit/errors"
)

// Collect subscribes to p and gathers every value until it terminates.
// The stream's error, if any, is returned along with the values received
// before it. If ctx ends first the subscription is cancelled and a CANCELLED
// error is returned.
func Collect[T any](ctx context.Context, p *Producer[T]) ([]T, error) {
	var (
		mu     sync.Mutex
		values []T
	)
	err := await(ctx, p, func(v T) {
		mu.Lock()
		values = append(values, v)
		mu.Unlock()
	})
	mu.Lock()
	defer mu.Unlock()
	return values, err
}

// ForEach calls fn for every value. An error from fn stops the stream,
// cancels the source and is returned wrapped as PROJECTION_FAILED.
func ForEach[T any](ctx context.Context, p *Producer[T], fn func(T) error) error {
	visit := Map(func(v T) (T, error) { return v, fn(v) })
	return await(ctx, visit(p), nil)
}

// Materialize records every signal, terminal included, in delivery order.
func Materialize[T any](ctx context.Context, p *Producer[T]) ([]Notification[T], error) {
	var (
		mu  sync.Mutex
		log []Notification[T]
	)
	record := func(n Notification[T]) {
		mu.Lock()
		log = append(log, n)
		mu.Unlock()
	}
	sub := p.SubscribeContext(ctx, Funcs[T]{
		Next:     func(v T) { record(Notification[T]{Kind: KindNext, Value: v}) },
		Error:    func(err error) { record(Notification[T]{Kind: KindError, Err: err}) },
		Complete: func() { record(Notification[T]{Kind: KindComplete}) },
	})
	<-sub.Done()

	mu.Lock()
	defer mu.Unlock()
	if n := len(log); n == 0 || !log[n-1].Terminal() {
		if ctx.Err() != nil {
			return log, errors.Cancelled(ctx.Err())
		}
	}
	return log, nil
}

// await blocks until p terminates or ctx ends.
func await[T any](ctx context.Context, p *Producer[T], onNext func(T)) error {
	var (
		mu         sync.Mutex
		terminated bool
		streamErr  error
	)
	sub := p.SubscribeContext(ctx, Funcs[T]{
		Next: onNext,
		Error: func(err error) {
			mu.Lock()
			terminated, streamErr = true, err
			mu.Unlock()
		},
		Complete: func() {
			mu.Lock()
			terminated = true
			mu.Unlock()
		},
	})
	<-sub.Done()

	mu.Lock()
	defer mu.Unlock()
	if !terminated {
		return errors.Cancelled(ctx.Err())
	}
	return streamErr
}
