package validator

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
)

type bounds[T cmp.Ordered] struct {
	min, max       T
	hasMin, hasMax bool
	inclusive      bool
}

// BoundOption configures the comparison validators.
type BoundOption[T cmp.Ordered] func(*bounds[T])

// WithMin sets the lower bound.
func WithMin[T cmp.Ordered](v T) BoundOption[T] {
	return func(b *bounds[T]) {
		b.min = v
		b.hasMin = true
	}
}

// WithMax sets the upper bound. GreaterThan uses it as the exclusive
// threshold the value has to exceed.
func WithMax[T cmp.Ordered](v T) BoundOption[T] {
	return func(b *bounds[T]) {
		b.max = v
		b.hasMax = true
	}
}

// WithInclusive controls whether Between accepts values equal to its bounds.
// Defaults to true.
func WithInclusive[T cmp.Ordered](inclusive bool) BoundOption[T] {
	return func(b *bounds[T]) {
		b.inclusive = inclusive
	}
}

func newBounds[T cmp.Ordered](opts []BoundOption[T]) bounds[T] {
	b := bounds[T]{inclusive: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	return b
}

// Between validates that a value lies between min and max.
type Between[T cmp.Ordered] struct {
	min, max  T
	inclusive bool
}

// NewBetween creates a Between validator. Both WithMin and WithMax are required.
func NewBetween[T cmp.Ordered](opts ...BoundOption[T]) (*Between[T], error) {
	b := newBounds(opts)
	if !b.hasMin || !b.hasMax {
		return nil, fmt.Errorf("%w: 'min' and 'max' have to be given", ErrMissingOption)
	}
	return &Between[T]{min: b.min, max: b.max, inclusive: b.inclusive}, nil
}

func (v *Between[T]) Min() T          { return v.min }
func (v *Between[T]) Max() T          { return v.max }
func (v *Between[T]) Inclusive() bool { return v.inclusive }

// Validate implements Validator. Numbers of another kind that cannot be
// converted to T without loss are compared as float64.
func (v *Between[T]) Validate(value any) Result {
	if n, ok := asOrdered[T](value); ok {
		return v.Check(n)
	}
	toMin, okMin := compareNumbers(value, v.min)
	toMax, okMax := compareNumbers(value, v.max)
	if !okMin || !okMax {
		return mismatch(value, v.min)
	}
	return v.result(value, toMin, toMax)
}

// Check validates an already typed value.
func (v *Between[T]) Check(n T) Result {
	return v.result(n, cmp.Compare(n, v.min), cmp.Compare(n, v.max))
}

func (v *Between[T]) result(value any, toMin, toMax int) Result {
	values := map[string]any{"value": value, "min": v.min, "max": v.max}

	if v.inclusive {
		if toMin < 0 || toMax > 0 {
			return fail("validation.between_inclusive", "'%{value}' is not between '%{min}' and '%{max}', inclusively", values)
		}
		return pass()
	}

	if toMin <= 0 || toMax >= 0 {
		return fail("validation.between", "'%{value}' is not between '%{min}' and '%{max}'", values)
	}
	return pass()
}

// LessThan validates that a value is strictly less than max (zero value by default).
type LessThan[T cmp.Ordered] struct {
	max T
}

func NewLessThan[T cmp.Ordered](opts ...BoundOption[T]) *LessThan[T] {
	b := newBounds(opts)
	return &LessThan[T]{max: b.max}
}

func (v *LessThan[T]) Max() T { return v.max }

// Validate implements Validator.
func (v *LessThan[T]) Validate(value any) Result {
	if n, ok := asOrdered[T](value); ok {
		return v.Check(n)
	}
	c, ok := compareNumbers(value, v.max)
	if !ok {
		return mismatch(value, v.max)
	}
	return v.result(value, c)
}

func (v *LessThan[T]) Check(n T) Result {
	return v.result(n, cmp.Compare(n, v.max))
}

func (v *LessThan[T]) result(value any, toMax int) Result {
	if toMax >= 0 {
		return fail("validation.less_than", "'%{value}' is not less than '%{max}'", map[string]any{
			"value": value,
			"max":   v.max,
		})
	}
	return pass()
}

// GreaterThan validates that a value is strictly greater than its bound.
//
// Without WithMax the bound is the largest value T can hold, so every value
// fails. This mirrors the historical behaviour and is kept on purpose.
type GreaterThan[T Numeric] struct {
	max T
}

func NewGreaterThan[T Numeric](opts ...BoundOption[T]) *GreaterThan[T] {
	b := newBounds(opts)
	if !b.hasMax {
		b.max = maxOf[T]()
	}
	return &GreaterThan[T]{max: b.max}
}

func (v *GreaterThan[T]) Max() T { return v.max }

// Validate implements Validator.
func (v *GreaterThan[T]) Validate(value any) Result {
	if n, ok := asOrdered[T](value); ok {
		return v.Check(n)
	}
	c, ok := compareNumbers(value, v.max)
	if !ok {
		return mismatch(value, v.max)
	}
	return v.result(value, c)
}

func (v *GreaterThan[T]) Check(n T) Result {
	return v.result(n, cmp.Compare(n, v.max))
}

func (v *GreaterThan[T]) result(value any, toMax int) Result {
	if toMax <= 0 {
		return fail("validation.greater_than", "%{value} is not greater than %{max}", map[string]any{
			"value": value,
			"max":   v.max,
		})
	}
	return pass()
}

func mismatch(value, bound any) Result {
	return fail("validation.type_mismatch", "'%{value}' cannot be compared with '%{bound}'", map[string]any{
		"value": value,
		"bound": bound,
	})
}

// asOrdered returns value as T. Values of another numeric (or string) kind
// are converted only when converting back yields the original value.
func asOrdered[T cmp.Ordered](value any) (T, bool) {
	var zero T
	if n, ok := value.(T); ok {
		return n, true
	}
	if value == nil {
		return zero, false
	}

	rv := reflect.ValueOf(value)
	target := reflect.TypeOf(zero)
	from, to := kindClass(rv.Kind()), kindClass(target.Kind())
	if from == 0 || from != to || !rv.CanConvert(target) {
		return zero, false
	}

	converted := rv.Convert(target)
	if back := converted.Convert(rv.Type()); !back.Equal(rv) {
		return zero, false
	}
	if isNegative(rv) != isNegative(converted) {
		return zero, false
	}
	return converted.Interface().(T), true
}

// compareNumbers compares two numbers of any kind as float64. It reports
// false unless both are numbers.
func compareNumbers(value, bound any) (int, bool) {
	a, ok := asFloat(value)
	if !ok {
		return 0, false
	}
	b, ok := asFloat(bound)
	if !ok {
		return 0, false
	}
	return cmp.Compare(a, b), true
}

func asFloat(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

const (
	classNumber = 1
	classString = 2
)

func kindClass(k reflect.Kind) int {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.String:
		return classString
	default:
		return 0
	}
}

func isNegative(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() < 0
	case reflect.Float32, reflect.Float64:
		return v.Float() < 0
	default:
		return false
	}
}

// maxOf returns the largest value representable by T.
func maxOf[T Numeric]() T {
	var zero T
	v := reflect.New(reflect.TypeOf(zero)).Elem()
	bits := v.Type().Bits()

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(math.MaxInt64 >> (64 - bits))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(math.MaxUint64 >> (64 - bits))
	case reflect.Float32:
		v.SetFloat(math.MaxFloat32)
	case reflect.Float64:
		v.SetFloat(math.MaxFloat64)
	}
	return v.Interface().(T)
}
