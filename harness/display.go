package harness

import (
	"sync"

	"github.com/kbukum/rxkit/logger"
)

// Display is the observer a run subscribes with. It logs every value as it
// arrives and keeps the sequence for comparison.
type Display struct {
	log *logger.Logger

	mu        sync.Mutex
	values    []string
	err       error
	completed bool
}

// NewDisplay creates a display logging through log.
func NewDisplay(log *logger.Logger) *Display {
	return &Display{log: log}
}

func (d *Display) OnNext(value string) {
	d.log.Info("served", logger.Fields(logger.FieldValue, value))
	d.mu.Lock()
	d.values = append(d.values, value)
	d.mu.Unlock()
}

func (d *Display) OnError(err error) {
	d.log.WithError(err).Error("run failed")
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

func (d *Display) OnComplete() {
	d.mu.Lock()
	d.completed = true
	n := len(d.values)
	d.mu.Unlock()
	d.log.Info("run completed", logger.Fields(logger.FieldCount, n))
}

// Values returns a copy of what has been shown so far.
func (d *Display) Values() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.values...)
}

// Err returns the error the run ended with, if any.
func (d *Display) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Completed reports whether the run ended with a completion.
func (d *Display) Completed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.completed
}
