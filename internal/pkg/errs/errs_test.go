package errs_test

import (
	"errors"
	"testing"

	"etching/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "0b7c")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "0b7c", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 0b7c", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewObjectNotFoundErrorWithCause("quote", "42", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "object not found: param is: quote, ID is: 42 (cause: connection reset)", err.Error())
	})

	t.Run("non string ids are formatted", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidError("status")
	assert.Equal(t, "value is invalid: status", err.Error())
	assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())

	withCause := errs.NewValueIsInvalidErrorWithCause("status", errors.New("shipped is not a valid status"))
	assert.Equal(t, "value is invalid: status (cause: shipped is not a valid status)", withCause.Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("total", -5, 0, "max int64")

		assert.Equal(t, -5, err.Value)
		assert.Equal(t, "value is invalid: -5 is total, min value is 0, max value is max int64", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("limit", 0, 1, 500, errors.New("page too small"))
		assert.Equal(t, "value is invalid: 0 is limit, min value is 1, max value is 500 (cause: page too small)", err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "line\nbreak", 0, 10)
		assert.Contains(t, err.Error(), "line break")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("reason")
	assert.Equal(t, "value is required: reason", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("reason", errors.New("cancel needs a reason"))
	assert.Equal(t, "value is required: reason (cause: cancel needs a reason)", withCause.Error())
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidError("order")
	require.NoError(t, err.Cause)
	assert.Equal(t, "version is invalid: order", err.Error())

	withCause := errs.NewVersionIsInvalidErrorWithCause("order", errors.New("expected 3"))
	assert.Equal(t, "version is invalid: order (cause: expected 3)", withCause.Error())
	assert.Equal(t, errs.ErrVersionIsInvalid, withCause.Unwrap())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "1"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("x"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("x", 1, 2, 3), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("x"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewVersionIsInvalidError("x"), errs.ErrVersionIsInvalid)

	var target *errs.VersionIsInvalidError
	require.ErrorAs(t, errors.Join(errors.New("other"), errs.NewVersionIsInvalidError("quote")), &target)
	assert.Equal(t, "quote", target.ParamName)
}
