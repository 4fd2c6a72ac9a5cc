package domain

import "errors"

var (
	// ErrNotFound is returned when a translation request cannot be found
	ErrNotFound = errors.New("translation request not found")

	// ErrDuplicateRequestID is returned when creating a record whose request ID already exists
	ErrDuplicateRequestID = errors.New("request id already exists")

	// ErrNotClaimable is returned when a conditional transition to processing
	// matched no row in queued status (redelivery or concurrent attempt)
	ErrNotClaimable = errors.New("translation request not in queued status")

	// ErrInvalidInput is returned when text or target language is missing
	ErrInvalidInput = errors.New("text and target language are required")
)
