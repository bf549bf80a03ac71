package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

func TestValidationErrors_Error(t *testing.T) {
	t.Run("returns default message when no errors", func(t *testing.T) {
		var errs validator.ValidationErrors
		assert.Equal(t, "validation failed", errs.Error())
	})

	t.Run("returns formatted message with single error", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Field: "email", Message: "is required"})
		assert.Equal(t, "validation failed: email: is required", errs.Error())
	})

	t.Run("omits empty field names", func(t *testing.T) {
		var errs validator.ValidationErrors
		errs.Add(validator.ValidationError{Message: "broken"})
		errs.Add(validator.ValidationError{Field: "age", Message: "too young"})
		assert.Equal(t, "validation failed: broken; age: too young", errs.Error())
	})
}

func TestValidationErrors_Lookup(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "email", Message: "is required"},
		{Field: "email", Message: "is invalid"},
		{Field: "name", Message: "too short"},
	}

	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("age"))
	assert.Equal(t, []string{"is required", "is invalid"}, errs.Get("email"))
	assert.Nil(t, errs.Get("age"))
	assert.False(t, errs.IsEmpty())
	assert.True(t, validator.ValidationErrors{}.IsEmpty())
}

func TestResult(t *testing.T) {
	t.Run("valid result has empty messages and no error", func(t *testing.T) {
		res := validator.NewEmailAddress().Validate("user@example.com")
		assert.True(t, res.Valid)
		assert.NotNil(t, res.Messages())
		assert.Empty(t, res.Messages())
		assert.NoError(t, res.Err("email"))
	})

	t.Run("failed result keeps key and values", func(t *testing.T) {
		res := validator.NewLessThan(validator.WithMax(10)).Validate(12)
		require.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "'12' is not less than '10'", res.Errors[0].Message)
		assert.Equal(t, "validation.less_than", res.Errors[0].TranslationKey)
		assert.Equal(t, map[string]any{"value": 12, "max": 10}, res.Errors[0].TranslationValues)
	})

	t.Run("err attributes messages to field", func(t *testing.T) {
		res := validator.NewLessThan(validator.WithMax(10)).Validate(12)
		err := res.Err("count")
		require.Error(t, err)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "count", errs[0].Field)
		assert.Empty(t, res.Errors[0].Field)
	})

	t.Run("failed result without messages still yields an error", func(t *testing.T) {
		err := validator.Result{}.Err("x")
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "validation failed", errs[0].Message)
	})
}

func TestApply(t *testing.T) {
	t.Run("returns nil when all validators pass", func(t *testing.T) {
		length, err := validator.NewStringLength(validator.StringLengthConfig{Min: 3})
		require.NoError(t, err)

		err = validator.Apply("email", "user@example.com", validator.NewEmailAddress(), length)
		assert.NoError(t, err)
	})

	t.Run("collects failures from every validator", func(t *testing.T) {
		length, err := validator.NewStringLength(validator.StringLengthConfig{Min: 5})
		require.NoError(t, err)

		err = validator.Apply("email", "ab", validator.NewEmailAddress(), length)
		require.Error(t, err)
		assert.True(t, validator.IsValidationError(err))

		errs := validator.ExtractValidationErrors(err)
		assert.Equal(t, []string{
			"Invalid Email address given.",
			"Value is less than 5 characters long.",
		}, errs.Get("email"))
	})

	t.Run("wrapped errors are still detected", func(t *testing.T) {
		err := validator.Apply("email", "nope", validator.NewEmailAddress())
		wrapped := fmt.Errorf("signup: %w", err)
		assert.True(t, validator.IsValidationError(wrapped))
		assert.Len(t, validator.ExtractValidationErrors(wrapped), 1)
	})

	t.Run("plain errors are not validation errors", func(t *testing.T) {
		assert.False(t, validator.IsValidationError(errors.New("boom")))
		assert.False(t, validator.IsValidationError(nil))
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("boom")))
	})
}

func TestFunc(t *testing.T) {
	even := validator.Func(func(value any) validator.Result {
		n, _ := value.(int)
		if n%2 != 0 {
			return validator.Result{Errors: validator.ValidationErrors{{Message: "odd"}}}
		}
		return validator.Result{Valid: true}
	})

	assert.True(t, even.Validate(4).Valid)
	assert.Equal(t, []string{"odd"}, even.Validate(3).Messages())
}

func TestChecker(t *testing.T) {
	t.Run("starts valid without messages", func(t *testing.T) {
		c := validator.Track(validator.NewEmailAddress())
		assert.Empty(t, c.Messages())
		assert.True(t, c.Result().Valid)
	})

	t.Run("messages reflect the last call only", func(t *testing.T) {
		c := validator.Track(validator.NewEmailAddress())

		assert.False(t, c.IsValid("invalid"))
		assert.Equal(t, []string{"Invalid Email address given."}, c.Messages())

		assert.True(t, c.IsValid("user@example.com"))
		assert.Empty(t, c.Messages())
	})

	t.Run("repeated failures do not accumulate", func(t *testing.T) {
		c := validator.Track(validator.NewEmailAddress())
		c.IsValid("a")
		c.IsValid("b")
		assert.Len(t, c.Messages(), 1)
	})
}

func TestMessages(t *testing.T) {
	t.Run("add keeps order and duplicates", func(t *testing.T) {
		var m validator.Messages
		m.Add("first")
		m.Add("second")
		m.Add("first")
		assert.Equal(t, 3, m.Len())
		assert.Equal(t, []string{"first", "second", "first"}, m.Messages())
	})

	t.Run("addf fills placeholders and keeps unknown ones", func(t *testing.T) {
		var m validator.Messages
		m.Addf("custom.key", "%{name} is %{age} years, %{unknown}", map[string]any{"name": "Bob", "age": 42})
		res := m.Result(false)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "Bob is 42 years, %{unknown}", res.Errors[0].Message)
		assert.Equal(t, "custom.key", res.Errors[0].TranslationKey)
	})

	t.Run("set replaces and clear drops", func(t *testing.T) {
		var m validator.Messages
		m.Add("old")
		m.Set("a", "b")
		assert.Equal(t, []string{"a", "b"}, m.Messages())

		m.Clear()
		assert.Equal(t, 0, m.Len())
		assert.Empty(t, m.Messages())
	})

	t.Run("result is a snapshot", func(t *testing.T) {
		var m validator.Messages
		m.Add("one")
		res := m.Result(false)
		m.Add("two")
		assert.Equal(t, []string{"one"}, res.Messages())
	})
}

func TestSetTranslator(t *testing.T) {
	t.Cleanup(func() { validator.SetTranslator(nil) })

	validator.SetTranslator(validator.TranslatorFunc(func(key, fallback string) string {
		if key == "validation.email" {
			return "Ungültige E-Mail-Adresse."
		}
		if key == "validation.less_than" {
			return "'%{value}' ist nicht kleiner als '%{max}'"
		}
		return fallback
	}))

	assert.Equal(t, []string{"Ungültige E-Mail-Adresse."}, validator.NewEmailAddress().Validate("x").Messages())
	assert.Equal(t, []string{"'5' ist nicht kleiner als '1'"},
		validator.NewLessThan(validator.WithMax(1)).Validate(5).Messages())

	length, err := validator.NewStringLength(validator.StringLengthConfig{Max: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Value is more than 1 characters long."}, length.Validate("ab").Messages())

	validator.SetTranslator(nil)
	assert.Equal(t, []string{"Invalid Email address given."}, validator.NewEmailAddress().Validate("x").Messages())
}
