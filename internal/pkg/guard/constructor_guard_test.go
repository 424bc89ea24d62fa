package guard_test

import (
	"errors"
	"testing"

	"restaurant/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

func TestConstructorGuardUsageExample(t *testing.T) {
	type TableCommand struct {
		table int
		guard guard.ConstructorGuard
	}

	errNotConstructed := errors.New("TableCommand must be created via NewTableCommand")

	newTableCommand := func(table int) (TableCommand, error) {
		if table <= 0 {
			return TableCommand{}, errors.New("table must be positive")
		}
		return TableCommand{table: table, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		cmd, err := newTableCommand(4)

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errNotConstructed))
		assert.Equal(t, 4, cmd.table)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		var cmd TableCommand

		assert.Equal(t, errNotConstructed, cmd.guard.Validate(errNotConstructed))
	})

	t.Run("failed_constructor_returns_zero_value", func(t *testing.T) {
		cmd, err := newTableCommand(0)

		require.Error(t, err)
		require.Error(t, cmd.guard.Validate(nil))
	})
}
