package stream

import (
	"github.com/kbukum/rxkit/logger"
)

// Observer receives the signals of one subscription: any number of OnNext
// calls followed by at most one OnError or OnComplete.
type Observer[T any] interface {
	OnNext(value T)
	OnError(err error)
	OnComplete()
}

// Funcs adapts optional callbacks to an Observer.
//
// A nil Error callback does not swallow the error: it is logged through the
// "stream" component logger.
type Funcs[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

func (f Funcs[T]) OnNext(value T) {
	if f.Next != nil {
		f.Next(value)
	}
}

func (f Funcs[T]) OnError(err error) {
	if f.Error != nil {
		f.Error(err)
		return
	}
	logger.Get("stream").WithError(err).Error("unhandled stream error")
}

func (f Funcs[T]) OnComplete() {
	if f.Complete != nil {
		f.Complete()
	}
}
