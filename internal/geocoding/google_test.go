package geocoding_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weekendwish/compass/internal/geocoding"
	"googlemaps.github.io/maps"
)

// mockGoogleClient is a mock implementation of GoogleAPIClient for testing.
type mockGoogleClient struct {
	geocodeFunc func(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

func (m *mockGoogleClient) Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
	return m.geocodeFunc(ctx, r)
}

func TestGoogleProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("api returns error", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, assert.AnError
			},
		}
		provider := geocoding.NewGoogleProvider(mockClient, logger)

		_, err := provider.Geocode(ctx, "some invalid place")

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, _ *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				return nil, nil
			},
		}
		provider := geocoding.NewGoogleProvider(mockClient, logger)

		coords, err := provider.Geocode(ctx, "some invalid place")

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
	})

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockGoogleClient{
			geocodeFunc: func(_ context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error) {
				assert.Equal(t, "Kothrud, Pune", r.Address)
				return []maps.GeocodingResult{
					{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 18.5074, Lng: 73.8077}}},
				}, nil
			},
		}
		provider := geocoding.NewGoogleProvider(mockClient, logger)

		coords, err := provider.Geocode(ctx, "Kothrud, Pune")

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 18.5074, coords.Latitude, 0.0001)
		require.InEpsilon(t, 73.8077, coords.Longitude, 0.0001)
	})
}
