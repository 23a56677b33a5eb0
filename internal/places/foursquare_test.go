package places_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weekendwish/compass/internal/models"
	"github.com/weekendwish/compass/internal/places"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newClient(t *testing.T, doFunc func(req *http.Request) (*http.Response, error)) *places.FoursquareClient {
	t.Helper()
	return places.NewFoursquareClientWithClient(
		&mockHTTPClient{doFunc: doFunc},
		"test-api-key",
		rate.NewLimiter(rate.Inf, 1),
		slog.Default(),
	)
}

var kothrud = models.Coordinates{Latitude: 18.5074, Longitude: 73.8077}

func TestFoursquareClient_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("successful search", func(t *testing.T) {
		client := newClient(t, func(req *http.Request) (*http.Response, error) {
			// Verify request parameters
			assert.Equal(t, "GET", req.Method)
			assert.Contains(t, req.URL.String(), "api.foursquare.com")
			assert.Contains(t, req.URL.Query().Get("ll"), "18.5074")
			assert.Equal(t, "8000", req.URL.Query().Get("radius"))
			assert.Equal(t, "40", req.URL.Query().Get("limit"))
			assert.Equal(t, "test-api-key", req.Header.Get("Authorization"))

			responseBody := `{"results":[
				{"fsq_id":"abc123","name":"Vaishali","geocodes":{"main":{"latitude":18.5159,"longitude":73.8445}},
				 "location":{"formatted_address":"FC Road, Pune"},"popularity":0.97,"price":2,
				 "photos":[{"prefix":"https://fastly.4sqi.net/img/general/","suffix":"/photo.jpg"}]},
				{"fsq_id":"def456","name":"Durga Cafe","geocodes":{"main":{"latitude":18.5091,"longitude":73.8125}},
				 "location":{"address":"Kothrud"},"popularity":0.81}
			]}`
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
			}, nil
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "abc123", records[0].FsqID)
		assert.Equal(t, "Vaishali", records[0].Name)
		assert.InEpsilon(t, 18.5159, records[0].Geocodes.Main.Latitude, 0.0001)
		assert.Equal(t, 2, records[0].Price)
		assert.Equal(t, "https://fastly.4sqi.net/img/general/original/photo.jpg", records[0].PhotoURL())
		assert.Empty(t, records[1].PhotoURL())
		assert.Zero(t, records[1].Price)
	})

	t.Run("unauthorized", func(t *testing.T) {
		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusUnauthorized,
				Body:       io.NopCloser(bytes.NewBufferString(`{"message":"invalid key"}`)),
			}, nil
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.Nil(t, records)
		require.ErrorIs(t, err, places.ErrUnauthorized)
	})

	t.Run("rate limited", func(t *testing.T) {
		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusTooManyRequests,
				Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
			}, nil
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.Nil(t, records)
		require.ErrorIs(t, err, places.ErrRateLimited)
	})

	t.Run("unexpected status", func(t *testing.T) {
		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       io.NopCloser(bytes.NewBufferString(`upstream exploded`)),
			}, nil
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.Nil(t, records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "places API returned status 500")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`not json`)),
			}, nil
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.Nil(t, records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode places response")
	})

	t.Run("transport error", func(t *testing.T) {
		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			return nil, assert.AnError
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.Nil(t, records)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute search request")
	})

	t.Run("context cancellation stops at the limiter", func(t *testing.T) {
		newCtx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			t.Fatal("request must not be sent")
			return nil, nil
		})

		records, err := client.Search(newCtx, kothrud, 8000)

		require.Nil(t, records)
		require.Error(t, err)
	})

	t.Run("empty result list is a valid response", func(t *testing.T) {
		client := newClient(t, func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewBufferString(`{"results":[]}`)),
			}, nil
		})

		records, err := client.Search(ctx, kothrud, 8000)

		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
