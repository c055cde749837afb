package kernel_test

import (
	"math"
	"testing"

	"orderlink/internal/core/domain/model/kernel"
	"orderlink/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates_valid_point", func(t *testing.T) {
		point, err := kernel.NewGeoPoint(52.52, 13.405)

		require.NoError(t, err)
		assert.InDelta(t, 52.52, point.Lat(), 1e-9)
		assert.InDelta(t, 13.405, point.Lng(), 1e-9)
		require.NoError(t, point.Validate())
	})

	t.Run("accepts_boundary_values", func(t *testing.T) {
		tests := []struct {
			name     string
			lat, lng float64
		}{
			{"south_pole", -90, 0},
			{"north_pole", 90, 0},
			{"date_line_west", 0, -180},
			{"date_line_east", 0, 180},
			{"origin", 0, 0},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tt.lat, tt.lng)
				require.NoError(t, err)
			})
		}
	})

	t.Run("rejects_invalid_coordinates", func(t *testing.T) {
		tests := []struct {
			name     string
			lat, lng float64
		}{
			{"lat_too_small", -90.01, 0},
			{"lat_too_large", 90.01, 0},
			{"lng_too_small", 0, -180.01},
			{"lng_too_large", 0, 180.01},
			{"lat_nan", math.NaN(), 0},
			{"lng_nan", 0, math.NaN()},
			{"lat_inf", math.Inf(1), 0},
			{"lng_neg_inf", 0, math.Inf(-1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tt.lat, tt.lng)
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var point kernel.GeoPoint
		require.Error(t, point.Validate())
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(1.5, 2.5)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(1.5, 2.5)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(1.5, 2.6)
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestGeoPoint_String(t *testing.T) {
	point, err := kernel.NewGeoPoint(52.52, 13.405)
	require.NoError(t, err)
	assert.Equal(t, "GeoPoint(52.520000,13.405000)", point.String())
}
