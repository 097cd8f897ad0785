package logger

import (
	"time"
)

// Standard field key constants for structured logging.
const (
	FieldComponent      = "component"
	FieldStream         = "stream"
	FieldOperator       = "operator"
	FieldSubscriptionID = "subscription_id"
	FieldKind           = "kind"
	FieldValue          = "value"
	FieldCount          = "count"
	FieldRunID          = "run_id"
	FieldRecipe         = "recipe"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("done", logger.Fields("stream", "fruits", "count", 3))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a stream that terminated with an error.
func ErrorFields(stream string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldStream: stream,
		FieldError:  err.Error(),
	}
}

// DurationFields creates fields for a subscription lifetime.
func DurationFields(stream string, d time.Duration) map[string]interface{} {
	return map[string]interface{}{
		FieldStream:   stream,
		FieldDuration: d.Milliseconds(),
	}
}

// MergeWithError adds an error field to an existing map.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields[FieldError] = err.Error()
	return fields
}
