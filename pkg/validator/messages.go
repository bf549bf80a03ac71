package validator

import (
	"fmt"
	"regexp"
	"sync/atomic"
)

// Translator resolves a translation key into a message template.
// Implementations return fallback when they have no translation for key.
// Templates use named placeholders in the form %{name}.
type Translator interface {
	Translate(key, fallback string) string
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key, fallback string) string

func (f TranslatorFunc) Translate(key, fallback string) string {
	return f(key, fallback)
}

type noopTranslator struct{}

func (noopTranslator) Translate(_, fallback string) string { return fallback }

type translatorHolder struct{ t Translator }

var activeTranslator atomic.Pointer[translatorHolder]

// SetTranslator replaces the translator used for all validator messages.
// A nil translator restores the identity translation.
func SetTranslator(t Translator) {
	if t == nil {
		activeTranslator.Store(nil)
		return
	}
	activeTranslator.Store(&translatorHolder{t: t})
}

func currentTranslator() Translator {
	if h := activeTranslator.Load(); h != nil {
		return h.t
	}
	return noopTranslator{}
}

var placeholderRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// formatMessage substitutes %{name} placeholders. Unknown placeholders are kept.
func formatMessage(tmpl string, values map[string]any) string {
	if len(values) == 0 {
		return tmpl
	}
	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := values[name]; ok {
			return fmt.Sprint(val)
		}
		return match
	})
}

// Messages is the ordered list of failure messages collected during one
// validation. Duplicates are kept.
type Messages struct {
	errs ValidationErrors
}

// Add appends a literal message.
func (m *Messages) Add(message string) {
	m.errs.Add(ValidationError{Message: message})
}

// Addf translates key, falling back to tmpl, fills in the placeholders from
// values and appends the result.
func (m *Messages) Addf(key, tmpl string, values map[string]any) {
	text := formatMessage(currentTranslator().Translate(key, tmpl), values)
	m.errs.Add(ValidationError{
		Message:           text,
		TranslationKey:    key,
		TranslationValues: values,
	})
}

// Set replaces all collected messages.
func (m *Messages) Set(messages ...string) {
	m.errs = m.errs[:0]
	for _, msg := range messages {
		m.Add(msg)
	}
}

// Clear drops all collected messages.
func (m *Messages) Clear() {
	m.errs = nil
}

func (m *Messages) Len() int {
	return len(m.errs)
}

// Messages returns the collected message texts.
func (m *Messages) Messages() []string {
	return Result{Errors: m.errs}.Messages()
}

// Result freezes the collected messages into a Result.
func (m *Messages) Result(valid bool) Result {
	errs := make(ValidationErrors, len(m.errs))
	copy(errs, m.errs)
	return Result{Valid: valid, Errors: errs}
}

func fail(key, tmpl string, values map[string]any) Result {
	var m Messages
	m.Addf(key, tmpl, values)
	return m.Result(false)
}

func pass() Result {
	return Result{Valid: true}
}
