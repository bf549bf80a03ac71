package validator

import (
	"errors"
	"fmt"
	"strings"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Validator is implemented by every validator in this package.
// Validate must not retain state between calls: every call starts with an
// empty message list.
type Validator interface {
	Validate(value any) Result
}

// Func adapts an ordinary function to the Validator interface.
type Func func(value any) Result

func (f Func) Validate(value any) Result {
	return f(value)
}

// ValidationError represents a single validation failure with translation support.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors represents a collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, err := range ve {
		if err.Field == "" {
			parts = append(parts, err.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Result is the outcome of a single Validate call.
type Result struct {
	Valid  bool
	Errors ValidationErrors
}

// Messages returns the failure messages in the order they were discovered.
func (r Result) Messages() []string {
	if len(r.Errors) == 0 {
		return []string{}
	}
	messages := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		messages = append(messages, err.Message)
	}
	return messages
}

// Err returns nil for a valid result. Otherwise it returns the collected
// errors as ValidationErrors, each attributed to field.
func (r Result) Err(field string) error {
	if r.Valid {
		return nil
	}

	errs := make(ValidationErrors, 0, len(r.Errors))
	for _, err := range r.Errors {
		err.Field = field
		errs = append(errs, err)
	}
	if errs.IsEmpty() {
		errs.Add(ValidationError{
			Field:          field,
			Message:        ErrValidationFailed.Error(),
			TranslationKey: "validation.failed",
		})
	}
	return errs
}

// Apply runs value through every validator and joins all failures under field.
// It returns nil when every validator accepts the value.
func Apply(field string, value any, validators ...Validator) error {
	var errs ValidationErrors

	for _, v := range validators {
		res := v.Validate(value)
		if res.Valid {
			continue
		}
		if err := ExtractValidationErrors(res.Err(field)); err != nil {
			errs = append(errs, err...)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// Checker keeps the result of the last IsValid call so callers can ask for
// the messages afterwards. Every IsValid call replaces the previous messages.
//
// A Checker is not safe for concurrent use; create one per validation.
type Checker struct {
	v    Validator
	last Result
}

// Track wraps v into a Checker.
func Track(v Validator) *Checker {
	return &Checker{v: v, last: Result{Valid: true}}
}

// IsValid validates value and stores the outcome.
func (c *Checker) IsValid(value any) bool {
	c.last = c.v.Validate(value)
	return c.last.Valid
}

// Messages returns the messages of the last IsValid call.
func (c *Checker) Messages() []string {
	return c.last.Messages()
}

// Result returns the complete outcome of the last IsValid call.
func (c *Checker) Result() Result {
	return c.last
}
