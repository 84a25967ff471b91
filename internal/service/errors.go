package service

import "errors"

var (
	// ErrMissingRequiredField means the caller's input lacks a required attribute.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrNotFound means no cached score exists; the caller must run analysis first.
	ErrNotFound = errors.New("validation score not found, run analysis first")
	// ErrComputationFailure wraps any failure of the scoring engine.
	ErrComputationFailure = errors.New("score computation failed")
	// ErrInvalidRequest covers malformed input other than missing pitch fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrStorageFailure means the score cache could not be read or written.
	ErrStorageFailure = errors.New("storage failure")
)
