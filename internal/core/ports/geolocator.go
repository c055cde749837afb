package ports

import (
	"context"

	"orderlink/internal/core/domain/model/kernel"
)

// Geolocator is the optional device positioning capability. Implementations
// return the current position or an error when positioning is unavailable;
// callers fall back to manually entered coordinates.
type Geolocator interface {
	CurrentPosition(ctx context.Context) (kernel.GeoPoint, error)
}
