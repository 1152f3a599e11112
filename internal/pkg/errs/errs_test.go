package errs_test

import (
	"errors"
	"testing"

	"drycleaning/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueIsRequiredError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("clientRef")

		assert.Equal(t, "clientRef", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: clientRef", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("field left empty")
		err := errs.NewValueIsRequiredErrorWithCause("paymentMethod", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: paymentMethod (cause: field left empty)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("quantity")

		assert.Equal(t, "value is invalid: quantity", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("must be positive")
		err := errs.NewValueIsInvalidErrorWithCause("quantity", cause)

		assert.Equal(t, "value is invalid: quantity (cause: must be positive)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats_bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("discountPercentage", 75, 0, 50)

		assert.Equal(t, 75, err.Value)
		assert.Equal(t,
			"value is invalid: 75 is discountPercentage, min value is 0, max value is 50",
			err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("sanitizes_newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("note", "first\nsecond", 0, 10)
		assert.Contains(t, err.Error(), "first second")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without_cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("sessionId", "abc-123")

		assert.Equal(t, "object not found: abc-123", err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("with_cause", func(t *testing.T) {
		cause := errors.New("row missing")
		err := errs.NewObjectNotFoundErrorWithCause("sessionId", "abc-123", cause)

		assert.Equal(t,
			"object not found: param is: sessionId, ID is: abc-123 (cause: row missing)",
			err.Error())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestVersionIsInvalidError(t *testing.T) {
	err := errs.NewVersionIsInvalidErrorWithCause("session version", errors.New("negative"))

	assert.Equal(t, "version is invalid: session version (cause: negative)", err.Error())
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestStaleSessionError(t *testing.T) {
	err := errs.NewStaleSessionError("abc-123", 4, 7)

	assert.Equal(t, 4, err.ExpectedVersion)
	assert.Equal(t, 7, err.ActualVersion)
	assert.Equal(t,
		"session state is stale: session abc-123 expected version 4, authoritative version 7",
		err.Error())
	require.ErrorIs(t, err, errs.ErrStaleSession)
}

func TestSessionExpiredError(t *testing.T) {
	err := errs.NewSessionExpiredError("abc-123")

	assert.Equal(t, "session expired: abc-123", err.Error())
	require.ErrorIs(t, err, errs.ErrSessionExpired)
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
	assert.Equal(t, "session state is stale", errs.ErrStaleSession.Error())
	assert.Equal(t, "session expired", errs.ErrSessionExpired.Error())
}
