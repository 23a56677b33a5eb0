package geocoding

import (
	"context"

	"github.com/weekendwish/compass/internal/models"
)

// Provider is an interface that defines a method for geocoding a
// free-text location. The Geocode method takes a context and a location
// string as input, and returns the corresponding coordinates and an
// error if any occurs. A provider makes at most one outbound call per
// invocation and never retries; the caller decides whether to retry or
// fall back.
type Provider interface {
	Geocode(ctx context.Context, location string) (*models.Coordinates, error)
}
