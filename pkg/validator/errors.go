package validator

import "errors"

var (
	// ErrValidationFailed is used when a failed result carries no message of its own.
	ErrValidationFailed = errors.New("validation failed")

	// ErrInvalidConfig is returned by constructors for options that can never validate anything.
	ErrInvalidConfig = errors.New("invalid validator configuration")

	// ErrMissingOption is returned when a required option was not supplied.
	ErrMissingOption = errors.New("missing required option")

	// ErrInvalidBounds is returned when a lower bound exceeds the upper bound.
	ErrInvalidBounds = errors.New("min must be less than or equal to max")

	// ErrUnknownEncoding is returned for character encodings golang.org/x/text does not know.
	ErrUnknownEncoding = errors.New("unknown character encoding")

	// ErrUnknownValidator is returned by Build for names that are neither builtins nor assertions.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrAssertionExists is returned when registering an assertion name twice.
	ErrAssertionExists = errors.New("assertion already registered")
)
