package stream

// ring is a bounded FIFO that evicts its oldest value when full. Storage
// grows on demand up to the bound, so a large bound on a short stream stays
// cheap.
type ring[T any] struct {
	buf   []T
	limit int
	head  int
}

func newRing[T any](limit int) *ring[T] {
	return &ring[T]{limit: limit}
}

// push appends v. When the ring was already full the evicted value is
// returned with ok set.
func (r *ring[T]) push(v T) (evicted T, ok bool) {
	if len(r.buf) < r.limit {
		r.buf = append(r.buf, v)
		return evicted, false
	}
	evicted = r.buf[r.head]
	r.buf[r.head] = v
	r.head = (r.head + 1) % r.limit
	return evicted, true
}

func (r *ring[T]) len() int {
	return len(r.buf)
}

// values returns the buffered values oldest first.
func (r *ring[T]) values() []T {
	out := make([]T, 0, len(r.buf))
	out = append(out, r.buf[r.head:]...)
	return append(out, r.buf[:r.head]...)
}
