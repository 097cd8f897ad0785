// Package config loads service configuration for rxkit binaries.
//
// LoadConfig reads a YAML file (config.yml by default), overlays a .env file
// and the process environment, and unmarshals the result through
// mapstructure tags. Environment names are derived from the struct's keys:
// stream.log_signals is read from STREAM_LOG_SIGNALS, or from
// JUICER_STREAM_LOG_SIGNALS with WithEnvPrefix("juicer").
//
//	var cfg config.ServiceConfig
//	if err := config.LoadConfig("juicer", &cfg); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// LoadFile reads a single YAML document without environment overlays; the
// harness uses it for recipe books.
package config
