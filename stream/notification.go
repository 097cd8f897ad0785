package stream

// Kind identifies the channel a signal travels on.
type Kind int

const (
	KindNext Kind = iota
	KindError
	KindComplete
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Notification records one signal delivered to an Observer.
type Notification[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// Terminal reports whether the notification ends a subscription.
func (n Notification[T]) Terminal() bool {
	return n.Kind != KindNext
}
