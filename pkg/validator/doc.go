// Package validator provides composable validators for single values:
// numeric and string comparisons, string length, regular expressions, email
// addresses, URLs, IP addresses, directories, uploaded files, callbacks and
// named assertions.
//
// Every validator implements Validator. Validate returns a Result value that
// carries the verdict together with the failure messages of that call, so a
// validator can be shared between goroutines and reused without clearing
// anything. Checker wraps a validator for callers that prefer asking
// IsValid first and Messages afterwards.
//
// # Configuration
//
// Validators with several options take a config struct, the comparison
// validators take functional options:
//
//	length, err := validator.NewStringLength(validator.StringLengthConfig{Min: 3, Max: 32})
//	age, err := validator.NewBetween(validator.WithMin(18), validator.WithMax(120))
//
// Constructors reject configurations that can never validate anything
// (negative sizes, min above max, unknown encodings) with errors wrapping
// ErrInvalidConfig, ErrInvalidBounds, ErrMissingOption or ErrUnknownEncoding.
//
// Build creates validators by name from loosely typed option maps, which is
// how options read from YAML, JSON or command line flags are applied:
//
//	v, err := validator.Build("file", map[string]any{"maxSize": "2MB", "mimeType": "image/*,pdf"})
//
// Names that are not builtin validators are resolved through the assertion
// registry (see DefaultAssertions), which exposes go-playground/validator
// tags such as "hostname" or "semver" and a few extras.
//
// # Empty values
//
// Regex, StringLength and File accept empty values (nil, "", empty slices
// and maps, nil pointers) unless ValidateEmpty is set. The remaining
// validators always check their input.
//
// # Messages
//
// Messages are produced from a translation key and an English template with
// %{name} placeholders. SetTranslator installs a Translator for all
// validators; without one the English templates are used. Every entry of
// Result.Errors keeps the key and placeholder values, so callers can also
// translate late.
//
//	if err := validator.Apply("email", input, validator.NewEmailAddress()); err != nil {
//	    for _, e := range validator.ExtractValidationErrors(err) {
//	        fmt.Println(e.Field, e.Message)
//	    }
//	}
package validator
