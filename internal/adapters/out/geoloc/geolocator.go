// Package geoloc provides the ports.Geolocator implementation. A headless
// deployment has no positioning hardware, so the position comes from
// configuration and stands in for the device geolocation capability.
package geoloc

import (
	"context"

	"orderlink/internal/core/domain/model/kernel"
)

// StaticGeolocator reports a fixed position from configuration.
type StaticGeolocator struct {
	point kernel.GeoPoint
}

// NewStaticGeolocator creates a geolocator pinned to the given coordinates.
func NewStaticGeolocator(lat, lng float64) (*StaticGeolocator, error) {
	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return nil, err
	}
	return &StaticGeolocator{point: point}, nil
}

// CurrentPosition returns the configured position.
func (g *StaticGeolocator) CurrentPosition(context.Context) (kernel.GeoPoint, error) {
	return g.point, nil
}
