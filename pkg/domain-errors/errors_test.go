package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodes(t *testing.T) {
	t.Run("new error carries its code", func(t *testing.T) {
		err := New(CodeNotFound, "demande not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
		assert.Equal(t, "demande not found", err.Error())
	})

	t.Run("wrap keeps the cause reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := Wrap(cause, CodeInternal, "failed to load demande")
		require.True(t, Is(err, cause))
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("uncoded errors map to internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := New(CodeConflict, "ninea already registered")
		wrapped := errors.Join(errors.New("context"), err)
		assert.True(t, HasCode(wrapped, CodeConflict))
	})
}
