package request

import "errors"

var (
	// ErrMissingNamespace is returned by AddRequest outside batch mode when no
	// namespace is given.
	ErrMissingNamespace = errors.New("request added without a namespace outside batch mode")

	// ErrBatchAlreadyStarted is returned when BeginBatch is called twice.
	ErrBatchAlreadyStarted = errors.New("batch request already started")

	// ErrBodyNotEmpty is returned when BeginBatch is called after requests
	// were added directly to the body.
	ErrBodyNotEmpty = errors.New("body already holds requests")

	// ErrInvalidOnError is returned for an unknown batch error policy.
	ErrInvalidOnError = errors.New("invalid onerror policy")

	// ErrInvalidContextParam is returned with WithStrictContext for context
	// keys outside ContextParams.
	ErrInvalidContextParam = errors.New("invalid context parameter")
)
