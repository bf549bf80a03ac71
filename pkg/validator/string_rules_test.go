package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestNewStringLength(t *testing.T) {
	t.Run("rejects negative lengths", func(t *testing.T) {
		_, err := validator.NewStringLength(validator.StringLengthConfig{Min: -1})
		assert.ErrorIs(t, err, validator.ErrInvalidConfig)
	})

	t.Run("rejects min above max", func(t *testing.T) {
		_, err := validator.NewStringLength(validator.StringLengthConfig{Min: 5, Max: 2})
		require.ErrorIs(t, err, validator.ErrInvalidBounds)
		assert.Contains(t, err.Error(), "min: 5 and max: 2 given")
	})

	t.Run("min without max is fine", func(t *testing.T) {
		_, err := validator.NewStringLength(validator.StringLengthConfig{Min: 5})
		assert.NoError(t, err)
	})

	t.Run("rejects unknown encodings", func(t *testing.T) {
		_, err := validator.NewStringLength(validator.StringLengthConfig{Encoding: "klingon-8"})
		assert.ErrorIs(t, err, validator.ErrUnknownEncoding)
	})
}

func TestStringLength(t *testing.T) {
	t.Run("accepts lengths within bounds", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Min: 2, Max: 4})
		require.NoError(t, err)

		for _, s := range []string{"ab", "abc", "abcd"} {
			assert.True(t, v.Validate(s).Valid, s)
		}
	})

	t.Run("reports too short values", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Min: 3})
		require.NoError(t, err)

		res := v.Validate("ab")
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Value is less than 3 characters long."}, res.Messages())
		assert.Equal(t, "validation.string_length_min", res.Errors[0].TranslationKey)
	})

	t.Run("reports too long values", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Max: 3})
		require.NoError(t, err)

		res := v.Validate("abcd")
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Value is more than 3 characters long."}, res.Messages())
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Max: 4})
		require.NoError(t, err)

		assert.True(t, v.Validate("äöüß").Valid)
		assert.False(t, v.Validate("äöüßx").Valid)
	})

	t.Run("decodes legacy encodings", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Max: 3, Encoding: "iso-8859-1"})
		require.NoError(t, err)

		// "äöü" in ISO-8859-1 is three bytes, each a single character.
		assert.True(t, v.Validate([]byte{0xe4, 0xf6, 0xfc}).Valid)
		assert.False(t, v.Validate([]byte{0xe4, 0xf6, 0xfc, 0x41}).Valid)
	})

	t.Run("skips empty values by default", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Min: 3})
		require.NoError(t, err)

		assert.True(t, v.Validate("").Valid)
		assert.True(t, v.Validate(nil).Valid)
	})

	t.Run("validates empty values on request", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Min: 3, ValidateEmpty: true})
		require.NoError(t, err)

		assert.False(t, v.Validate("").Valid)
	})

	t.Run("accepts stringers and rejects other types", func(t *testing.T) {
		v, err := validator.NewStringLength(validator.StringLengthConfig{Max: 3})
		require.NoError(t, err)

		assert.True(t, v.Validate(stringer("abc")).Valid)

		res := v.Validate(12345)
		assert.False(t, res.Valid)
		assert.Equal(t, "validation.not_a_string", res.Errors[0].TranslationKey)
	})
}
