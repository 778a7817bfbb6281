package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	plain := New("CODE", http.StatusBadRequest, "something failed")
	assert.Equal(t, "something failed", plain.Error())

	wrapped := Wrap(errors.New("root cause"), "CODE", http.StatusBadRequest, "something failed")
	assert.Equal(t, "something failed: root cause", wrapped.Error())
	assert.Equal(t, "root cause", errors.Unwrap(wrapped).Error())
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	appErr := FromError(ErrReadOnlyMode)
	assert.Equal(t, "READ_ONLY_MODE", appErr.Code)
	assert.Equal(t, http.StatusForbidden, appErr.Status)

	// Plain errors are normalised to internal errors.
	normalised := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, normalised.Code)
	assert.Equal(t, http.StatusInternalServerError, normalised.Status)
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	clone := Clone(ErrModuleNotAvailable, "the financial module is not available in your current plan")
	require.NotNil(t, clone)
	assert.Equal(t, ErrModuleNotAvailable.Code, clone.Code)
	assert.Equal(t, ErrModuleNotAvailable.Status, clone.Status)
	assert.Equal(t, "the financial module is not available in your current plan", clone.Message)

	// The sentinel itself is untouched.
	assert.Equal(t, "module not available in current plan", ErrModuleNotAvailable.Message)

	// Empty overrides keep the original message.
	assert.Equal(t, ErrConflict.Message, Clone(ErrConflict, "").Message)
}
