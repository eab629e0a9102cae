package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuard_DefaultErrorMessage(t *testing.T) {
	assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
}

func TestConstructorGuard_CopySafety(t *testing.T) {
	g := guard.NewConstructorGuard()
	cp := g

	require.NoError(t, g.Validate(nil))
	require.NoError(t, cp.Validate(nil))
}
