package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used by Negotiate when nothing matches.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger sets the logger. A discard logger is used by default.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMissingTranslationsLogging logs lookups that found no translation.
// Off by default to avoid excessive logging.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// Translator looks up messages by language and dot separated key.
// It is safe for concurrent use.
type Translator struct {
	mu             sync.RWMutex
	catalog        Catalog
	defaultLang    string
	missingLogMode bool
	logger         *slog.Logger
}

// NewTranslator loads the catalog from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}

	catalog, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, messages := range catalog {
		if lang == "" || messages == nil {
			return nil, fmt.Errorf("%w: empty language code or nil messages", ErrInvalidCatalog)
		}
	}

	t.catalog = catalog
	t.logger.DebugContext(ctx, "translations loaded", "languages", t.SupportedLanguages())
	return t, nil
}

// SupportedLanguages returns the catalog languages in sorted order.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.catalog))
	for lang := range t.catalog {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// Lookup returns the message template for key, e.g. "validation.email".
func (t *Translator) Lookup(lang, key string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	messages, ok := t.catalog[lang]
	if !ok {
		return "", false
	}

	var cur any = messages
	for part := range strings.SplitSeq(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		if cur, ok = m[part]; !ok {
			return "", false
		}
	}

	s, ok := cur.(string)
	return s, ok
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// T translates key and substitutes %{name} placeholders from args, given as
// name, value pairs. The key itself is returned when no translation exists.
//
//	msg := tr.T("de", "greeting", "name", "Alice")
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.Lookup(lang, key)
	if !ok {
		t.logMissing(lang, key)
		tmpl = key
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}

// ForLanguage returns a validator.Translator serving lang. Keys without a
// translation keep the validator's English template.
//
//	validator.SetTranslator(tr.ForLanguage("de"))
func (t *Translator) ForLanguage(lang string) validator.Translator {
	return validator.TranslatorFunc(func(key, fallback string) string {
		if tmpl, ok := t.Lookup(lang, key); ok {
			return tmpl
		}
		t.logMissing(lang, key)
		return fallback
	})
}

// Negotiate picks the best supported language for an Accept-Language style
// preference list, falling back to the default language.
func (t *Translator) Negotiate(header string) string {
	return ParseAcceptLanguage(header, t.SupportedLanguages(), t.defaultLang)
}

func (t *Translator) logMissing(lang, key string) {
	if t.missingLogMode {
		t.logger.Warn("translation not found", "lang", lang, "key", key)
	}
}
