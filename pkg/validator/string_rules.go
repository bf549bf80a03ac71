package validator

import (
	"fmt"
	"reflect"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// StringLengthConfig configures StringLength.
type StringLengthConfig struct {
	// Min is the minimum length in characters. Defaults to 0.
	Min int `mapstructure:"min"`
	// Max is the maximum length in characters. Zero means no maximum.
	Max int `mapstructure:"max"`
	// Encoding names the character encoding of the input, e.g. "iso-8859-1".
	// Empty means UTF-8.
	Encoding string `mapstructure:"encoding"`
	// ValidateEmpty disables the empty value shortcut.
	ValidateEmpty bool `mapstructure:"validateEmpty"`
}

// StringLength validates the character length of a string.
// Empty strings are valid unless ValidateEmpty is set.
type StringLength struct {
	cfg     StringLengthConfig
	decoder encoding.Encoding
}

func NewStringLength(cfg StringLengthConfig) (*StringLength, error) {
	if cfg.Min < 0 || cfg.Max < 0 {
		return nil, fmt.Errorf("%w: lengths must not be negative, min: %d and max: %d given", ErrInvalidConfig, cfg.Min, cfg.Max)
	}
	if cfg.Max > 0 && cfg.Min > cfg.Max {
		return nil, fmt.Errorf("%w: the min must be less than or equal to the max length, but min: %d and max: %d given",
			ErrInvalidBounds, cfg.Min, cfg.Max)
	}

	v := &StringLength{cfg: cfg}
	if cfg.Encoding != "" {
		enc, err := htmlindex.Get(cfg.Encoding)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownEncoding, cfg.Encoding, err)
		}
		v.decoder = enc
	}
	return v, nil
}

func (v *StringLength) Config() StringLengthConfig { return v.cfg }

// Validate implements Validator.
func (v *StringLength) Validate(value any) Result {
	if !v.cfg.ValidateEmpty && isEmpty(value) {
		return pass()
	}

	s, ok := stringOf(value)
	if !ok {
		return notAString(value)
	}

	length, err := v.length(s)
	if err != nil {
		return fail("validation.string_length_encoding", "Value is not valid %{encoding} text", map[string]any{
			"encoding": v.cfg.Encoding,
		})
	}

	if length < v.cfg.Min {
		return fail("validation.string_length_min", "Value is less than %{min} characters long.", map[string]any{
			"min": v.cfg.Min,
		})
	}

	if v.cfg.Max > 0 && length > v.cfg.Max {
		return fail("validation.string_length_max", "Value is more than %{max} characters long.", map[string]any{
			"max": v.cfg.Max,
		})
	}

	return pass()
}

func (v *StringLength) length(s string) (int, error) {
	if v.decoder == nil {
		return utf8.RuneCountInString(s), nil
	}
	decoded, err := v.decoder.NewDecoder().String(s)
	if err != nil {
		return 0, err
	}
	return utf8.RuneCountInString(decoded), nil
}

func notAString(value any) Result {
	return fail("validation.not_a_string", "'%{value}' is not a string", map[string]any{"value": value})
}

// stringOf accepts strings, byte slices and fmt.Stringer values.
func stringOf(value any) (string, bool) {
	switch s := value.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		return s.String(), true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}

// isEmpty reports whether value is nil, an empty string, or an empty
// slice, array or map.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
