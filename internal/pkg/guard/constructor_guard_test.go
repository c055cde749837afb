package guard_test

import (
	"errors"
	"testing"

	"orderlink/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed_guard_validates_successfully", func(t *testing.T) {
		// When
		g := guard.NewConstructorGuard()

		// Then
		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_the_custom_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value
		expectedError := errors.New("GeoPoint must be created via NewGeoPoint")

		// When
		err := g.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_falls_back_to_default_error", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_names_the_constructor_requirement", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardUsageExample demonstrates the pattern the domain value
// objects follow: the guard is embedded as an unexported field, set only by
// the constructor, and checked by Validate before the object is trusted.
func TestConstructorGuardUsageExample(t *testing.T) {
	type cartLine struct {
		productID string
		quantity  int
		guard     guard.ConstructorGuard
	}

	var errCartLineNotConstructed = errors.New("cartLine must be created via newCartLine")

	newCartLine := func(productID string, quantity int) (cartLine, error) {
		if productID == "" {
			return cartLine{}, errors.New("product id is required")
		}
		if quantity < 1 {
			return cartLine{}, errors.New("quantity must be positive")
		}
		return cartLine{
			productID: productID,
			quantity:  quantity,
			guard:     guard.NewConstructorGuard(),
		}, nil
	}

	validate := func(l cartLine) error {
		return l.guard.Validate(errCartLineNotConstructed)
	}

	t.Run("constructor_built_value_passes_validation", func(t *testing.T) {
		line, err := newCartLine("p1", 2)
		require.NoError(t, err)
		require.NoError(t, validate(line))
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var line cartLine // zero value

		err := validate(line)

		require.Error(t, err)
		assert.Equal(t, errCartLineNotConstructed, err)
	})

	t.Run("constructor_still_enforces_its_own_rules", func(t *testing.T) {
		_, err := newCartLine("", 1)
		require.Error(t, err)

		_, err = newCartLine("p1", 0)
		require.Error(t, err)
	})
}

// TestConstructorGuardConcurrency verifies the guard is safe to validate
// concurrently. It is written once by the constructor and only read after.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for i := 0; i < 50; i++ {
		go func() {
			for j := 0; j < 500; j++ {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for i := 0; i < 50; i++ {
		<-done
	}
}
