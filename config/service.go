package config

import (
	"github.com/kbukum/rxkit/errors"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/stream"
	"github.com/kbukum/rxkit/validation"
	"github.com/kbukum/rxkit/version"
)

// ServiceConfig is the configuration every rxkit binary shares. Projects
// extend it by embedding:
//
//	type JuicerConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Recipes string `yaml:"recipes" mapstructure:"recipes"`
//	}
type ServiceConfig struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Debug       bool          `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`
	Stream      stream.Config `yaml:"stream" mapstructure:"stream"`
}

// ApplyDefaults fills unset fields, including the logging and stream sections.
func (c *ServiceConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	if c.Logging.ServiceName == "" {
		c.Logging.ServiceName = c.Name
	}
	if c.Debug && c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	c.Logging.ApplyDefaults()
	if c.Stream.Name == "" {
		c.Stream.Name = c.Name
	}
	c.Stream.ApplyDefaults()
}

// Validate checks every section.
func (c *ServiceConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return errors.InvalidConfig("service", err)
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.InvalidConfig("logging", err)
	}
	return c.Stream.Validate()
}
