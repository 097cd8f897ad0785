package stream

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kbukum/rxkit/errors"
)

// Subscriber is the sink a producer emits into. It forwards signals to the
// subscription's Observer until a terminal signal is sent or the subscription
// is cancelled; after that every call is a no-op.
type Subscriber[T any] interface {
	Next(value T)
	Error(err error)
	Complete()

	// Closed reports whether the subscription will accept no further signals.
	// Synchronous sources poll it between values.
	Closed() bool

	// Add registers a teardown run when the subscription ends. If the
	// subscription has already ended the teardown runs immediately.
	Add(teardown func())

	// Context returns the context the subscription was started with.
	// Operators subscribing upstream pass it on unchanged.
	Context() context.Context
}

// Subscription is the consumer's handle on an active subscription.
type Subscription interface {
	// Cancel stops delivery and releases every upstream subscription.
	// It is idempotent and a no-op after a terminal signal.
	Cancel()
	Closed() bool
	// Done is closed once the subscription is released, either by a
	// terminal signal or by Cancel.
	Done() <-chan struct{}
}

// teardownAdder is anything that can own an upstream subscription.
type teardownAdder interface {
	Add(teardown func())
	Context() context.Context
}

// subscriber serializes delivery to its Observer. A goroutine that finds
// delivery in progress queues its signal for the delivering goroutine to
// drain, which also turns reentrant calls into ordered ones.
type subscriber[T any] struct {
	ctx       context.Context
	dst       Observer[T]
	cancelled atomic.Bool

	mu        sync.Mutex
	stopped   bool
	emitting  bool
	released  bool
	queue     []Notification[T]
	teardowns []func()
	done      chan struct{}
}

func newSubscriber[T any](ctx context.Context, dst Observer[T]) *subscriber[T] {
	return &subscriber[T]{ctx: ctx, dst: dst, done: make(chan struct{})}
}

func (s *subscriber[T]) Next(value T) {
	s.deliver(Notification[T]{Kind: KindNext, Value: value})
}

func (s *subscriber[T]) Error(err error) {
	s.deliver(Notification[T]{Kind: KindError, Err: errors.Upstream(err)})
}

func (s *subscriber[T]) Complete() {
	s.deliver(Notification[T]{Kind: KindComplete})
}

func (s *subscriber[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *subscriber[T]) Done() <-chan struct{} {
	return s.done
}

func (s *subscriber[T]) Context() context.Context {
	return s.ctx
}

func (s *subscriber[T]) Add(teardown func()) {
	if teardown == nil {
		return
	}
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		teardown()
		return
	}
	s.teardowns = append(s.teardowns, teardown)
	s.mu.Unlock()
}

func (s *subscriber[T]) Cancel() {
	s.mu.Lock()
	if s.released || s.cancelled.Load() {
		s.mu.Unlock()
		return
	}
	s.cancelled.Store(true)
	s.stopped = true
	s.queue = nil
	s.mu.Unlock()
	s.release()
}

func (s *subscriber[T]) deliver(n Notification[T]) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if n.Terminal() {
		s.stopped = true
	}
	if s.emitting {
		s.queue = append(s.queue, n)
		s.mu.Unlock()
		return
	}
	s.emitting = true
	s.mu.Unlock()

	for {
		s.dispatch(n)

		s.mu.Lock()
		if len(s.queue) == 0 {
			s.emitting = false
			s.mu.Unlock()
			return
		}
		n = s.queue[0]
		s.queue[0] = Notification[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()
	}
}

func (s *subscriber[T]) dispatch(n Notification[T]) {
	if s.cancelled.Load() {
		return
	}
	switch n.Kind {
	case KindNext:
		s.dst.OnNext(n.Value)
	case KindError:
		s.dst.OnError(n.Err)
		s.release()
	case KindComplete:
		s.dst.OnComplete()
		s.release()
	}
}

// release runs the teardowns exactly once, most recent first.
func (s *subscriber[T]) release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	s.stopped = true
	teardowns := s.teardowns
	s.teardowns = nil
	s.mu.Unlock()

	close(s.done)
	for i := len(teardowns) - 1; i >= 0; i-- {
		teardowns[i]()
	}
}

// serial owns at most one upstream subscription at a time. Each Add replaces
// the previous one, which has already terminated by then.
type serial struct {
	ctx    context.Context
	mu     sync.Mutex
	cancel func()
	closed bool
}

func (s *serial) Context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

func (s *serial) Add(teardown func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		teardown()
		return
	}
	s.cancel = teardown
	s.mu.Unlock()
}

func (s *serial) Cancel() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
