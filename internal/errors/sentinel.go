package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates invalid user input or invalid generator arguments.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a generator, template, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrKindMismatch indicates a catalog document of a different kind than
	// the generator operates on.
	ErrKindMismatch = errors.New("document kind mismatch")

	// ErrHeadless indicates a prompt would have been asked in headless mode.
	ErrHeadless = errors.New("prompt required in headless mode")

	// ErrMalformedDocument indicates an existing catalog document could not be parsed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrUnknownProperty indicates a property name missing from the path map.
	// It is always a programming mistake in a generator definition.
	ErrUnknownProperty = errors.New("unknown property")
)
