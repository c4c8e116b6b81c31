package guard_test

import (
	"errors"
	"testing"

	"tracking/internal/pkg/guard"

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

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used in a
// domain value object to enforce constructor usage.
func TestConstructorGuardUsageExample(t *testing.T) {
	type radius struct {
		meters float64
		guard  guard.ConstructorGuard
	}

	var errRadiusNotConstructed = errors.New("radius must be created via newRadius")

	newRadius := func(meters float64) (radius, error) {
		if meters <= 0 {
			return radius{}, errors.New("radius must be positive")
		}
		return radius{meters: meters, guard: guard.NewConstructorGuard()}, nil
	}

	validate := func(r radius) error {
		return r.guard.Validate(errRadiusNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		r, err := newRadius(100)

		require.NoError(t, err)
		require.NoError(t, validate(r))
		assert.InDelta(t, 100.0, r.meters, 0.0001)
	})

	t.Run("zero_value_construction_fails_validation", func(t *testing.T) {
		var r radius // zero value

		err := validate(r)

		require.Error(t, err)
		assert.Equal(t, errRadiusNotConstructed, err)
	})

	t.Run("invalid_input_rejected_by_constructor", func(t *testing.T) {
		_, err := newRadius(-1)

		require.Error(t, err)
	})
}

// TestConstructorGuardImmutability verifies guards can be safely copied by value.
func TestConstructorGuardImmutability(t *testing.T) {
	g := guard.NewConstructorGuard()
	testError := errors.New("test error")

	gCopy := g

	require.NoError(t, g.Validate(testError))
	require.NoError(t, gCopy.Validate(testError))
}
