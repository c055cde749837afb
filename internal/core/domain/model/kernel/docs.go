// Package kernel contains shared value objects used across the domain model.
//
// GeoPoint is a validated WGS84 coordinate pair used by the courier location
// flow. It guarantees both components are finite and within geographic bounds
// before any request carrying them is dispatched.
package kernel
