// Package logger provides structured logging for rxkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers. Stream instrumentation logs every signal of a
// subscription at debug level with the keys defined in fields.go.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//	  output: "stderr"
//
// # Usage
//
//	log := logger.Get("stream")
//	log.Debug("next", logger.Fields(logger.FieldOperator, "take", logger.FieldValue, v))
package logger
