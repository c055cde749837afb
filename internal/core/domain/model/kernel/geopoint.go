package kernel

import (
	"errors"
	"fmt"
	"math"

	"orderlink/internal/pkg/errs"
	"orderlink/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint to ensure
// both coordinates were validated.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a validated latitude/longitude pair.
// GeoPoint is an immutable value object; the zero value is invalid and fails
// validation, so location payloads can never carry NaN, infinite, or
// out-of-range coordinates.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(52.52, 13.405)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("Position: %s", point) // Output: GeoPoint(52.520000,13.405000)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint from the given coordinates.
// Both coordinates must be finite numbers; latitude must be within
// [LatitudeMin..LatitudeMax] and longitude within [LongitudeMin..LongitudeMax].
// Returns an error if either coordinate is non-finite or out of bounds.
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
// The zero value of GeoPoint is invalid and fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lng returns the longitude in degrees.
func (p GeoPoint) Lng() float64 {
	return p.lng
}

// IsEqual compares two GeoPoints by exact coordinate values.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("latitude", fmt.Errorf("%v is not a finite number", lat))
	}
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsInvalidErrorWithCause("latitude",
			fmt.Errorf("%f is outside [%v..%v]", lat, LatitudeMin, LatitudeMax))
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return errs.NewValueIsInvalidErrorWithCause("longitude", fmt.Errorf("%v is not a finite number", lng))
	}
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsInvalidErrorWithCause("longitude",
			fmt.Errorf("%f is outside [%v..%v]", lng, LongitudeMin, LongitudeMax))
	}
	p.lng = lng
	return nil
}
