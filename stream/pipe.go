package stream

// Pipe applies same-typed operators left to right. With no operators it
// returns p itself.
func Pipe[T any](p *Producer[T], ops ...Operator[T, T]) *Producer[T] {
	for _, op := range ops {
		if op != nil {
			p = op(p)
		}
	}
	return p
}

// Pipe applies same-typed operators left to right.
func (p *Producer[T]) Pipe(ops ...Operator[T, T]) *Producer[T] {
	return Pipe(p, ops...)
}

// Pipe2 applies two operators that may change the element type.
func Pipe2[A, B, C any](p *Producer[A], op1 Operator[A, B], op2 Operator[B, C]) *Producer[C] {
	return op2(op1(p))
}

// Pipe3 applies three operators that may change the element type.
func Pipe3[A, B, C, D any](p *Producer[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D]) *Producer[D] {
	return op3(op2(op1(p)))
}

// Pipe4 applies four operators that may change the element type.
func Pipe4[A, B, C, D, E any](p *Producer[A], op1 Operator[A, B], op2 Operator[B, C], op3 Operator[C, D], op4 Operator[D, E]) *Producer[E] {
	return op4(op3(op2(op1(p))))
}

// Compose joins two operators into one.
func Compose[A, B, C any](first Operator[A, B], second Operator[B, C]) Operator[A, C] {
	return func(p *Producer[A]) *Producer[C] {
		return second(first(p))
	}
}
