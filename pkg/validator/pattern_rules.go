package validator

import (
	"fmt"
	"regexp"
)

// RegexConfig configures Regex.
type RegexConfig struct {
	// Pattern is an RE2 expression. Required.
	Pattern string `mapstructure:"pattern"`
	// NotMatchMessage replaces the default failure message.
	NotMatchMessage string `mapstructure:"notMatchMessage"`
	// ValidateEmpty disables the empty value shortcut.
	ValidateEmpty bool `mapstructure:"validateEmpty"`
}

// Regex validates a string against a pattern. Empty values are valid unless
// ValidateEmpty is set.
//
// A pattern that does not compile is not a construction error: every call
// to Validate fails with a message naming the pattern instead.
type Regex struct {
	cfg      RegexConfig
	re       *regexp.Regexp
	compiled error
}

func NewRegex(cfg RegexConfig) (*Regex, error) {
	if cfg.Pattern == "" {
		return nil, fmt.Errorf("%w: 'pattern'", ErrMissingOption)
	}

	re, err := regexp.Compile(cfg.Pattern)
	return &Regex{cfg: cfg, re: re, compiled: err}, nil
}

// MustRegex is like NewRegex but panics on a missing pattern.
func MustRegex(pattern string) *Regex {
	v, err := NewRegex(RegexConfig{Pattern: pattern})
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Regex) Pattern() string { return v.cfg.Pattern }

// Validate implements Validator.
func (v *Regex) Validate(value any) Result {
	if !v.cfg.ValidateEmpty && isEmpty(value) {
		return pass()
	}

	if v.compiled != nil {
		return fail("validation.regex_error", "There was an internal error while using the pattern '%{pattern}'", map[string]any{
			"pattern": v.cfg.Pattern,
		})
	}

	s, ok := stringOf(value)
	if !ok {
		return notAString(value)
	}

	if v.re.MatchString(s) {
		return pass()
	}

	if v.cfg.NotMatchMessage != "" {
		var m Messages
		m.Add(v.cfg.NotMatchMessage)
		return m.Result(false)
	}

	return fail("validation.regex", "'%{value}' does not match against pattern '%{pattern}'", map[string]any{
		"value":   s,
		"pattern": v.cfg.Pattern,
	})
}
