package validator

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
)

type builder func(options map[string]any) (Validator, error)

// builtins are keyed by lower cased name.
var builtins = map[string]struct {
	name  string
	build builder
}{
	"between":      {"between", buildBetween},
	"lessthan":     {"lessThan", buildLessThan},
	"greaterthan":  {"greaterThan", buildGreaterThan},
	"regex":        {"regex", buildRegex},
	"stringlength": {"stringLength", buildStringLength},
	"emailaddress": {"emailAddress", buildEmailAddress},
	"url":          {"url", buildURL},
	"ipaddress":    {"ipAddress", buildIPAddress},
	"directory":    {"directory", buildDirectory},
	"file":         {"file", buildFile},
}

// Factory builds validators from a name and a loosely typed option map, as
// read from YAML, JSON or command line flags.
type Factory struct {
	loader *Loader
}

// NewFactory creates a Factory that falls back to loader for names that
// are not builtin validators. A nil loader uses DefaultAssertions.
func NewFactory(loader *Loader) *Factory {
	if loader == nil {
		loader = NewLoader(nil)
	}
	return &Factory{loader: loader}
}

// Build returns the validator called name, configured with options.
// Builtin names are matched case-insensitively; assertion names exactly.
func (f *Factory) Build(name string, options map[string]any) (Validator, error) {
	if b, ok := builtins[strings.ToLower(name)]; ok {
		v, err := b.build(options)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		return v, nil
	}

	if a, ok := f.loader.Load(name); ok {
		return a.WithOptions(options), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownValidator, name)
}

// Names lists the builtin validators followed by the registered assertions.
func (f *Factory) Names() []string {
	names := BuiltinNames()
	return append(names, f.loader.registry.Names()...)
}

// BuiltinNames returns the names of the builtin validators in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for _, b := range builtins {
		names = append(names, b.name)
	}
	slices.Sort(names)
	return names
}

// Build is shorthand for NewFactory(nil).Build.
func Build(name string, options map[string]any) (Validator, error) {
	return NewFactory(nil).Build(name, options)
}

func decodeOptions(options map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.DecodeHookFuncType(byteSizeHook),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(options); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// byteSizeHook accepts human readable sizes like "10MB" or "1 KiB" for int64 fields.
func byteSizeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Int64 {
		return data, nil
	}
	n, err := humanize.ParseBytes(reflect.ValueOf(data).String())
	if err != nil || n > math.MaxInt64 {
		return data, nil
	}
	return int64(n), nil
}

type numericBounds struct {
	Min       *float64 `mapstructure:"min"`
	Max       *float64 `mapstructure:"max"`
	Inclusive *bool    `mapstructure:"inclusive"`
}

type stringBounds struct {
	Min       *string `mapstructure:"min"`
	Max       *string `mapstructure:"max"`
	Inclusive *bool   `mapstructure:"inclusive"`
}

// decodeBounds tries numeric bounds first and falls back to string bounds
// when a bound does not look like a number.
func decodeBounds(options map[string]any) (*numericBounds, *stringBounds, error) {
	var nb numericBounds
	err := decodeOptions(options, &nb)
	if err == nil {
		return &nb, nil, nil
	}

	var sb stringBounds
	if serr := decodeOptions(options, &sb); serr != nil {
		return nil, nil, errors.Join(err, serr)
	}
	return nil, &sb, nil
}

func boundOptions[T cmp.Ordered](lo, hi *T, inclusive *bool) []BoundOption[T] {
	var opts []BoundOption[T]
	if lo != nil {
		opts = append(opts, WithMin(*lo))
	}
	if hi != nil {
		opts = append(opts, WithMax(*hi))
	}
	if inclusive != nil {
		opts = append(opts, WithInclusive[T](*inclusive))
	}
	return opts
}

func buildBetween(options map[string]any) (Validator, error) {
	nb, sb, err := decodeBounds(options)
	if err != nil {
		return nil, err
	}
	if nb != nil {
		return NewBetween(boundOptions(nb.Min, nb.Max, nb.Inclusive)...)
	}
	return NewBetween(boundOptions(sb.Min, sb.Max, sb.Inclusive)...)
}

func buildLessThan(options map[string]any) (Validator, error) {
	nb, sb, err := decodeBounds(options)
	if err != nil {
		return nil, err
	}
	if nb != nil {
		return NewLessThan(boundOptions(nil, nb.Max, nil)...), nil
	}
	return NewLessThan(boundOptions(nil, sb.Max, nil)...), nil
}

func buildGreaterThan(options map[string]any) (Validator, error) {
	var nb numericBounds
	if err := decodeOptions(options, &nb); err != nil {
		return nil, err
	}
	return NewGreaterThan(boundOptions(nil, nb.Max, nil)...), nil
}

func buildRegex(options map[string]any) (Validator, error) {
	var cfg RegexConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return NewRegex(cfg)
}

func buildStringLength(options map[string]any) (Validator, error) {
	var cfg StringLengthConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return NewStringLength(cfg)
}

func buildEmailAddress(options map[string]any) (Validator, error) {
	if err := decodeOptions(options, &struct{}{}); err != nil {
		return nil, err
	}
	return NewEmailAddress(), nil
}

func buildURL(options map[string]any) (Validator, error) {
	var cfg URLConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return NewURL(cfg), nil
}

func buildIPAddress(options map[string]any) (Validator, error) {
	var cfg IPAddressConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return NewIPAddress(cfg)
}

func buildDirectory(options map[string]any) (Validator, error) {
	var cfg DirectoryConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return NewDirectory(cfg), nil
}

func buildFile(options map[string]any) (Validator, error) {
	var cfg FileConfig
	if err := decodeOptions(options, &cfg); err != nil {
		return nil, err
	}
	return NewFile(cfg)
}
