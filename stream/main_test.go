package stream

import (
	"context"
	"slices"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func collect[T any](t *testing.T, p *Producer[T]) []T {
	t.Helper()
	got, err := Collect(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func assertValues[T comparable](t *testing.T, got, want []T) {
	t.Helper()
	if len(got) == 0 && len(want) == 0 {
		return
	}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// counted emits 1..n and records how many values it pushed and whether it
// was subscribed at all.
type counted struct {
	subscribed int
	pushed     int
}

func (c *counted) producer(n int) *Producer[int] {
	return Create(func(s Subscriber[int]) {
		c.subscribed++
		for i := 1; i <= n; i++ {
			if s.Closed() {
				return
			}
			c.pushed++
			s.Next(i)
		}
		s.Complete()
	})
}

// naturals never completes on its own.
func naturals() *Producer[int] {
	return Create(func(s Subscriber[int]) {
		for i := 0; !s.Closed(); i++ {
			s.Next(i)
		}
	})
}
