package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		wrapped := Wrap(ErrInvalidInput, "amount check failed")
		assert.EqualError(t, wrapped, "amount check failed: invalid input")
		assert.True(t, Is(wrapped, ErrInvalidInput))
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("preserves error chain across multiple wraps", func(t *testing.T) {
		inner := Wrap(ErrConfiguration, "secret too short")
		outer := Wrap(inner, "startup failed")
		assert.True(t, Is(outer, ErrConfiguration))
	})
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", ErrUnauthorized)
	assert.True(t, Is(err, ErrUnauthorized))
	assert.False(t, Is(err, ErrInvalidInput))
}

func TestNew(t *testing.T) {
	err := New("something broke")
	assert.EqualError(t, err, "something broke")
}
