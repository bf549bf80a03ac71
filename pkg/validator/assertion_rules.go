package validator

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AssertionFunc reports whether value satisfies an assertion. An error means
// the assertion itself could not be evaluated.
type AssertionFunc func(value any, options map[string]any) (bool, error)

// AssertionRegistry maps assertion names to functions. It is usually filled
// once at startup and read afterwards; all methods are safe for concurrent use.
type AssertionRegistry struct {
	mu  sync.RWMutex
	fns map[string]AssertionFunc
}

func NewAssertionRegistry() *AssertionRegistry {
	return &AssertionRegistry{fns: make(map[string]AssertionFunc)}
}

// Register adds fn under name.
func (r *AssertionRegistry) Register(name string, fn AssertionFunc) error {
	if name == "" || fn == nil {
		return fmt.Errorf("%w: assertion needs a name and a function", ErrInvalidConfig)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.fns[name]; ok {
		return fmt.Errorf("%w: %s", ErrAssertionExists, name)
	}
	r.fns[name] = fn
	return nil
}

// MustRegister is like Register but panics on error.
func (r *AssertionRegistry) MustRegister(name string, fn AssertionFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

func (r *AssertionRegistry) Lookup(name string) (AssertionFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.fns[name]
	return fn, ok
}

// Names returns the registered names in sorted order.
func (r *AssertionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.fns))
}

// TagAssertion wraps a go-playground/validator tag. A "param" option is
// appended to the tag, so TagAssertion("min") with {"param": 3} checks "min=3".
func TagAssertion(tag string) AssertionFunc {
	return func(value any, options map[string]any) (bool, error) {
		full := tag
		if param, ok := options["param"]; ok {
			full = fmt.Sprintf("%s=%v", tag, param)
		}

		err := formatChecker().Var(value, full)
		if err == nil {
			return true, nil
		}

		var verrs playground.ValidationErrors
		if errors.As(err, &verrs) {
			return false, nil
		}
		return false, err
	}
}

var (
	defaultAssertions     *AssertionRegistry
	defaultAssertionsOnce sync.Once
)

// playgroundTags are exposed by DefaultAssertions under the same names.
var playgroundTags = []string{
	"email", "url", "uri", "hostname", "fqdn", "alpha", "alphanum", "numeric",
	"number", "hexadecimal", "hexcolor", "json", "base64", "cidr", "mac",
	"semver", "e164", "latitude", "longitude", "ascii", "lowercase", "uppercase",
	"len", "min", "max", "eq", "ne", "oneof", "contains", "startswith", "endswith",
}

// DefaultAssertions returns the shared registry with the builtin assertions.
// Additional assertions may be registered on it during startup.
func DefaultAssertions() *AssertionRegistry {
	defaultAssertionsOnce.Do(func() {
		r := NewAssertionRegistry()
		for _, tag := range playgroundTags {
			r.MustRegister(tag, TagAssertion(tag))
		}
		r.MustRegister("uuid", assertUUID)
		r.MustRegister("notEmpty", func(value any, _ map[string]any) (bool, error) {
			return !isEmpty(value), nil
		})
		defaultAssertions = r
	})
	return defaultAssertions
}

func assertUUID(value any, _ map[string]any) (bool, error) {
	s, ok := stringOf(value)
	if !ok || strings.TrimSpace(s) == "" {
		return false, nil
	}
	_, err := uuid.Parse(s)
	return err == nil, nil
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used for absorbed assertion errors.
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader resolves assertion names into validators.
type Loader struct {
	registry *AssertionRegistry
	logger   *slog.Logger
}

// NewLoader creates a Loader for registry, or for DefaultAssertions when nil.
func NewLoader(registry *AssertionRegistry, opts ...LoaderOption) *Loader {
	if registry == nil {
		registry = DefaultAssertions()
	}
	l := &Loader{
		registry: registry,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load returns a validator for the named assertion. The boolean is false
// when no assertion with that name exists.
func (l *Loader) Load(name string) (*Assertion, bool) {
	fn, ok := l.registry.Lookup(name)
	if !ok {
		return nil, false
	}
	return &Assertion{name: name, fn: fn, logger: l.logger}, true
}

// Assertion adapts an AssertionFunc to the Validator interface. Errors and
// panics raised by the function become failure messages.
type Assertion struct {
	name    string
	fn      AssertionFunc
	options map[string]any
	logger  *slog.Logger
}

func (a *Assertion) Name() string { return a.name }

// WithOptions returns a copy of a that passes options to the function.
func (a *Assertion) WithOptions(options map[string]any) *Assertion {
	cp := *a
	cp.options = maps.Clone(options)
	return &cp
}

// Validate implements Validator.
func (a *Assertion) Validate(value any) Result {
	ok, err := a.call(value)
	if err != nil {
		if a.logger != nil {
			a.logger.Debug("assertion error converted to validation failure",
				"assertion", a.name,
				"error", err,
			)
		}
		var m Messages
		m.Add(err.Error())
		return m.Result(false)
	}

	if !ok {
		return fail("validation.assertion", "'%{value}' does not satisfy assertion '%{name}'", map[string]any{
			"value": value,
			"name":  a.name,
		})
	}
	return pass()
}

func (a *Assertion) call(value any) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("assertion %s: %v", a.name, r)
		}
	}()
	return a.fn(value, a.options)
}
