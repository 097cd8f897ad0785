// Package errors provides the error taxonomy used by rxkit streams.
//
// Every error a stream delivers through OnError is, or wraps, an *AppError
// carrying a machine-readable code:
//
//   - PROJECTION_FAILED: a caller-supplied callback (map, filter, concatMap
//     projection, zip combiner) returned an error.
//   - UPSTREAM_ERROR: a source delivered an error value explicitly.
//   - CANCELLED: a blocking terminal gave up because its context was done.
//
// Stream operators never retry, so none of these codes is retryable.
package errors
