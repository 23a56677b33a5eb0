package geocoding

import (
	"context"
	"log/slog"

	"github.com/weekendwish/compass/internal/models"
)

// FallbackProvider wraps a primary provider with the static locality
// table. When the primary fails for any reason, the static table is
// consulted before the failure is surfaced; if the table has no match
// either, the primary error propagates unchanged so callers can match
// on the provider's sentinels.
type FallbackProvider struct {
	primary  Provider
	fallback Provider
	log      *slog.Logger
}

// NewFallbackProvider creates a provider that consults fallback whenever
// primary fails.
func NewFallbackProvider(primary, fallback Provider, log *slog.Logger) *FallbackProvider {
	return &FallbackProvider{primary: primary, fallback: fallback, log: log}
}

// Geocode resolves the location with the primary provider, falling back
// to the static table on any primary error.
func (fp *FallbackProvider) Geocode(ctx context.Context, location string) (*models.Coordinates, error) {
	coords, err := fp.primary.Geocode(ctx, location)
	if err == nil {
		return coords, nil
	}

	fp.log.WarnContext(ctx, "Primary geocoder failed, trying static fallback",
		"location", location, "error", err)

	coords, fbErr := fp.fallback.Geocode(ctx, location)
	if fbErr != nil {
		// Surface the primary failure; the static miss is only logged.
		fp.log.DebugContext(ctx, "Static fallback missed", "location", location, "error", fbErr)
		return nil, err
	}

	return coords, nil
}
