package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeStatic represents the built-in locality table of the supported city.
	ProviderTypeStatic ProviderType = "static"
)

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	RateLimit int          // Rate limit for requests per second (used by Google provider)
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
// It applies the Factory pattern to decouple provider instantiation from
// business logic.
//
// Supported provider types:
// - "google": Google Maps Geocoding API (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "static": built-in locality table, no network access at all
//
// A missing API key must not crash the process: requesting the Google
// provider without a key degrades to Nominatim, which is keyless.
// Every remote provider is wrapped with the static locality table as a
// fallback, so known localities keep resolving during provider outages.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		if config.APIKey == "" {
			config.Logger.Warn("Google provider requested without API key, degrading to Nominatim")
			return newNominatimProvider(config)
		}
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return newNominatimProvider(config)
	case ProviderTypeStatic:
		return NewStaticProvider(config.Logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps geocoding provider wrapped
// with the static fallback.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	google := NewGoogleProvider(client, config.Logger)

	return NewFallbackProvider(google, NewStaticProvider(config.Logger), config.Logger), nil
}

// newNominatimProvider creates a Nominatim geocoding provider wrapped
// with the static fallback.
func newNominatimProvider(config ProviderConfig) (Provider, error) {
	nominatim := NewNominatimProvider(config.Logger)

	return NewFallbackProvider(nominatim, NewStaticProvider(config.Logger), config.Logger), nil
}
