package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Stream errors
const (
	// ErrCodeProjection indicates a caller-supplied callback failed.
	ErrCodeProjection ErrorCode = "PROJECTION_FAILED"
	// ErrCodeUpstream indicates a source delivered an error.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeCancelled indicates the consumer stopped waiting.
	ErrCodeCancelled ErrorCode = "CANCELLED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates a configuration section is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeMismatch indicates a produced sequence differs from the expected one.
	ErrCodeMismatch ErrorCode = "MISMATCH"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// IsRetryableCode returns true if the error code indicates a retryable error.
// Streams never retry, so no code here is.
func IsRetryableCode(ErrorCode) bool {
	return false
}
