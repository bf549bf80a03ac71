package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrNilAdapter = errors.New("translation adapter is nil")

	// Parsing
	ErrFailedToParseJSON = errors.New("failed to parse JSON catalog")
	ErrFailedToParseYAML = errors.New("failed to parse YAML catalog")
	ErrInvalidCatalog    = errors.New("invalid translation catalog")
	ErrParsingCancelled  = errors.New("catalog parsing cancelled")

	// File operations
	ErrUnsupportedFormat     = errors.New("unsupported catalog format")
	ErrFailedToReadFile      = errors.New("failed to read catalog file")
	ErrFailedToReadDirectory = errors.New("failed to read catalog directory")
)

// CatalogError reports a language entry that does not hold a map of messages.
type CatalogError struct {
	Lang string
	Err  error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("%v: language %q: expected a map of messages", e.Err, e.Lang)
}

func (e *CatalogError) Unwrap() []error {
	return []error{e.Err, ErrInvalidCatalog}
}
