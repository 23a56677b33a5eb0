package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/weekendwish/compass/internal/models"
	"golang.org/x/time/rate"
)

// FoursquareBaseURL is the Foursquare Places API search endpoint.
const FoursquareBaseURL = "https://api.foursquare.com/v3/places/search"

// searchLimit is how many candidates a single search fetches. The
// ranker filters and truncates afterwards, so the fetch is deliberately
// wider than the final result set.
const searchLimit = 40

// FoursquareClient fetches candidate places from the Foursquare Places
// API within a radius of given coordinates. It issues exactly one
// authenticated request per Search call and never retries; any failure
// is the caller's signal to fall back to the offline catalog.
type FoursquareClient struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the places API
	apiKey  string        // API key with places access
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the Foursquare client.
var (
	ErrUnauthorized  = errors.New("places API unauthorized (invalid API key)")
	ErrRateLimited   = errors.New("places API rate limit exceeded")
	ErrEmptyResponse = errors.New("places API returned empty response")
)

// Record is a raw place as returned by the Foursquare search endpoint.
// Only the fields the normalizer consumes are modeled; everything except
// the identifier, name and main geocode is optional in practice.
type Record struct {
	FsqID    string `json:"fsq_id"`
	Name     string `json:"name"`
	Geocodes struct {
		Main struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"main"`
	} `json:"geocodes"`
	Location struct {
		FormattedAddress string `json:"formatted_address"`
		Address          string `json:"address"`
		Locality         string `json:"locality"`
	} `json:"location"`
	Popularity float64 `json:"popularity"`
	Price      int     `json:"price"`
	Photos     []struct {
		Prefix string `json:"prefix"`
		Suffix string `json:"suffix"`
	} `json:"photos"`
}

// PhotoURL assembles the URL of the record's first photo, or returns an
// empty string when the record carries none.
func (r Record) PhotoURL() string {
	if len(r.Photos) == 0 {
		return ""
	}
	return r.Photos[0].Prefix + "original" + r.Photos[0].Suffix
}

// searchResponse is the JSON envelope of the search endpoint.
type searchResponse struct {
	Results []Record `json:"results"`
}

// NewFoursquareClient creates a new Foursquare places client.
func NewFoursquareClient(apiKey string, rateLimit int, log *slog.Logger) *FoursquareClient {
	const timeout = 10

	return &FoursquareClient{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: FoursquareBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewFoursquareClientWithClient allows injecting a custom HTTP client.
func NewFoursquareClientWithClient(
	client HTTPClient,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *FoursquareClient {
	return &FoursquareClient{
		client:  client,
		baseURL: FoursquareBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Search fetches raw candidate places within radiusMeters of center.
func (fc *FoursquareClient) Search(
	ctx context.Context,
	center models.Coordinates,
	radiusMeters float64,
) ([]Record, error) {
	// Rate limit
	if err := fc.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	fc.log.DebugContext(ctx, "Searching places using Foursquare",
		"lat", center.Latitude, "lon", center.Longitude, "radius", radiusMeters)

	reqURL, err := url.Parse(fc.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("ll", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	query.Set("radius", strconv.Itoa(int(radiusMeters)))
	query.Set("limit", strconv.Itoa(searchLimit))
	query.Set("fields", "fsq_id,name,geocodes,location,popularity,price,photos")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Headers
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fc.apiKey)

	resp, err := fc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		fc.log.ErrorContext(ctx, "Foursquare API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("places API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result searchResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode places response: %w", err)
	}

	fc.log.DebugContext(ctx, "Foursquare search finished", "candidates", len(result.Results))

	return result.Results, nil
}
