package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError(t *testing.T) {
	base := errors.New("row missing")
	err := NewNotFoundError(base, "User not found")

	appErr, ok := GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode)
	assert.Equal(t, "User not found", appErr.Message)
	assert.True(t, errors.Is(err, base))

	_, ok = GetAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsConflict(t *testing.T) {
	conflict := NewConflictError(ErrVersionConflict, "Aggregate changed, retry")
	assert.True(t, IsConflict(conflict))

	invalidState := NewInvalidStateError(errors.New("already collected"), "Reward already collected")
	assert.False(t, IsConflict(invalidState))
	assert.False(t, IsConflict(errors.New("plain")))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, LanguageTurkish, NormalizeLanguage("turkish"))
	assert.Equal(t, LanguageTurkish, NormalizeLanguage("Türkçe"))
	assert.Equal(t, LanguageTurkish, NormalizeLanguage("TURKCE"))
	assert.Equal(t, LanguageTurkish, NormalizeLanguage("  turkish  "))
	assert.Equal(t, "american", NormalizeLanguage("American"))
}
