package stream

import (
	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/validation"
)

// Config selects the instrumentation Instrument applies.
type Config struct {
	// Name prefixes every instrumented stream name, e.g. "juicer.fruits".
	Name       string `yaml:"name" mapstructure:"name" validate:"required,max=64"`
	LogSignals bool   `yaml:"log_signals" mapstructure:"log_signals"`
	Metrics    bool   `yaml:"metrics" mapstructure:"metrics"`
	Tracing    bool   `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "stream"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.InvalidConfig("stream", err)
	}
	return nil
}
