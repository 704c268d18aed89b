package domain

import "errors"

var (
	// ErrInvalidArgument signals a malformed or inconsistent request.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound signals a missing point of interest.
	ErrNotFound = errors.New("not found")
	// ErrIndexUnavailable signals a geo index failure. Not retried by the engine.
	ErrIndexUnavailable = errors.New("geo index unavailable")
	// ErrEncoderUnavailable signals an embedding provider failure.
	ErrEncoderUnavailable = errors.New("encoder unavailable")
	// ErrVectorDimMismatch signals a vector dimension mismatch.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
