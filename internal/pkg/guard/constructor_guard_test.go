package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		customError := errors.New("test object not constructed")
		require.NoError(t, g.Validate(customError))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		g := guard.NewConstructorGuard()

		// When
		err := g.Validate(errors.New("not constructed"))

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// by domain value objects to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type fare struct {
		total int64
		guard guard.ConstructorGuard
	}

	var errFareNotConstructed = errors.New("Fare must be created via NewFare")

	newFare := func(total int64) (fare, error) {
		if total < 0 {
			return fare{}, errors.New("total cannot be negative")
		}
		return fare{total: total, guard: guard.NewConstructorGuard()}, nil
	}

	validateFare := func(f fare) error {
		return f.guard.Validate(errFareNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		f, err := newFare(90000)
		require.NoError(t, err)
		require.NoError(t, validateFare(f))
		assert.Equal(t, int64(90000), f.total)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var f fare // zero value
		err := validateFare(f)
		require.Error(t, err)
		assert.Equal(t, errFareNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		_, err := newFare(-1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "total cannot be negative")
	})
}
