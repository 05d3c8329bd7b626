package kernel_test

import (
	"errors"
	"testing"

	"takeout/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly constructed guard returns nil", func(t *testing.T) {
		g := kernel.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value guard returns custom error", func(t *testing.T) {
		var g kernel.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero value guard returns default error when nil", func(t *testing.T) {
		var g kernel.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, kernel.ErrDefaultConstructorGuard)
	})
}
