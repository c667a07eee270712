package types

import "errors"

// Sentinel errors shared across layers
var (
	// ErrDataLoad indicates the service catalog source is missing,
	// malformed, or violates the record schema. Fatal at startup.
	ErrDataLoad = errors.New("failed to load service catalog")

	// ErrCompletionProvider indicates the external completion provider
	// call failed (timeout, non-success status, malformed response).
	// Recoverable per request.
	ErrCompletionProvider = errors.New("completion provider request failed")

	// ErrRecordNotFound indicates a service record lookup missed
	ErrRecordNotFound = errors.New("service record not found")

	// ErrEmptyQuestion indicates the caller submitted a blank question
	ErrEmptyQuestion = errors.New("question cannot be empty")
)
