package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/weekendwish/compass/internal/geocoding"
	"github.com/weekendwish/compass/internal/metrics"
	"github.com/weekendwish/compass/internal/models"
	"github.com/weekendwish/compass/internal/normalize"
	"github.com/weekendwish/compass/internal/places"
	"github.com/weekendwish/compass/internal/ranking"
)

// Request-level errors crossing the service boundary.
var (
	// ErrGeocode means the starting location could not be resolved to
	// coordinates. It is fatal to the request and surfaced to the user.
	ErrGeocode = errors.New("could not geocode starting location")
	// ErrNoData means both the online provider and the offline catalog
	// were unavailable. Distinct from a valid empty result set.
	ErrNoData = errors.New("no place data available from any source")
)

// Searcher fetches raw candidate places from the online provider.
type Searcher interface {
	Search(ctx context.Context, center models.Coordinates, radiusMeters float64) ([]places.Record, error)
}

// CatalogQuerier queries the offline catalog by proximity.
type CatalogQuerier interface {
	Query(center models.Coordinates, radiusMeters float64) []models.Place
}

// Result is one completed recommendation: the resolved starting
// coordinates, the per-person budget share the filters used, and the
// ranked places.
type Result struct {
	Center          models.Coordinates
	BudgetPerPerson float64
	Places          []ranking.Ranked
}

// Recommender runs the recommendation pipeline: geocode the start,
// fetch candidates online with an offline fallback, normalize, filter,
// rank. It is stateless across invocations; concurrent calls share only
// the injected read-only collaborators.
type Recommender struct {
	log           *slog.Logger       // Logger for logging service activities
	geocoder      geocoding.Provider // Resolves free-text starts to coordinates
	searcher      Searcher           // Online provider client, nil in offline-only mode
	catalog       CatalogQuerier     // Offline catalog, nil when no dataset is configured
	metrics       *metrics.Metrics   // Metrics for tracking pipeline behaviour
	defaultRadius float64            // Radius applied when a request omits one, meters
	maxResults    int                // Cap on the returned result set
	timeout       time.Duration      // Bound on a single orchestrated call
}

// NewRecommender creates a new instance of Recommender. Either searcher
// or catalog may be nil (degraded modes); when both are nil every
// request fails with ErrNoData.
func NewRecommender(
	log *slog.Logger,
	geocoder geocoding.Provider,
	searcher Searcher,
	catalog CatalogQuerier,
	appMetrics *metrics.Metrics,
	defaultRadius float64,
	maxResults int,
	timeout time.Duration,
) *Recommender {
	return &Recommender{
		log:           log,
		geocoder:      geocoder,
		searcher:      searcher,
		catalog:       catalog,
		metrics:       appMetrics,
		defaultRadius: defaultRadius,
		maxResults:    maxResults,
		timeout:       timeout,
	}
}

// Recommend executes the pipeline for one request. Per-record failures
// are dropped and counted, an online provider failure falls back to the
// offline catalog, and only request-level errors (validation, ErrGeocode,
// ErrNoData) are returned. A valid empty result set is not an error.
func (r *Recommender) Recommend(ctx context.Context, req models.RecommendationRequest) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req.Normalize(r.defaultRadius)
	if err := req.Validate(); err != nil {
		r.metrics.RequestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	center, err := r.resolveStart(ctx, req.Start)
	if err != nil {
		r.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	candidates, err := r.fetch(ctx, *center, req.Radius)
	if err != nil {
		r.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	rankStart := time.Now()
	ranked := ranking.Rank(candidates, *center, req)
	r.metrics.StageSeconds.WithLabelValues("rank").Observe(time.Since(rankStart).Seconds())

	if len(ranked) > r.maxResults {
		ranked = ranked[:r.maxResults]
	}

	r.log.InfoContext(ctx, "Recommendation request completed",
		"start", req.Start, "candidates", len(candidates), "results", len(ranked))
	r.metrics.RequestsTotal.WithLabelValues("success").Inc()

	return &Result{
		Center:          *center,
		BudgetPerPerson: req.BudgetPerPerson(),
		Places:          ranked,
	}, nil
}

// resolveStart turns the start string into coordinates. A "lat,lon"
// literal short-circuits the geocoder; anything else goes through the
// configured provider. Geocoding failures wrap ErrGeocode so the
// boundary can surface them as user-facing errors.
func (r *Recommender) resolveStart(ctx context.Context, start string) (*models.Coordinates, error) {
	if coords, ok := parseLatLon(start); ok {
		r.log.DebugContext(ctx, "Start is a coordinate literal", "lat", coords.Latitude, "lon", coords.Longitude)
		return coords, nil
	}

	geocodeStart := time.Now()
	coords, err := r.geocoder.Geocode(ctx, start)
	r.metrics.StageSeconds.WithLabelValues("geocode").Observe(time.Since(geocodeStart).Seconds())
	if err != nil {
		r.log.WarnContext(ctx, "Geocoding failed", "start", start, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrGeocode, err)
	}

	return coords, nil
}

// fetch gathers candidate places: the online provider first, then the
// offline catalog when the provider is unconfigured or fails. A failed
// online attempt is non-fatal; both sources unavailable is ErrNoData.
func (r *Recommender) fetch(ctx context.Context, center models.Coordinates, radius float64) ([]models.Place, error) {
	if r.searcher != nil {
		fetchStart := time.Now()
		records, err := r.searcher.Search(ctx, center, radius)
		r.metrics.StageSeconds.WithLabelValues("fetch").Observe(time.Since(fetchStart).Seconds())

		if err == nil {
			return r.normalizeOnline(ctx, records), nil
		}

		r.metrics.ProviderErrors.Inc()
		r.log.WarnContext(ctx, "Online provider failed, falling back to offline catalog", "error", err)

		if r.catalog == nil {
			return nil, fmt.Errorf("%w: online provider failed and no offline catalog is configured", ErrNoData)
		}
		r.metrics.Fallbacks.Inc()

		return r.catalog.Query(center, radius), nil
	}

	if r.catalog == nil {
		return nil, ErrNoData
	}

	return r.catalog.Query(center, radius), nil
}

// normalizeOnline runs raw provider records through the normalizer,
// dropping and counting malformed ones.
func (r *Recommender) normalizeOnline(ctx context.Context, records []places.Record) []models.Place {
	normalized := make([]models.Place, 0, len(records))
	dropped := 0

	for _, rec := range records {
		place, err := normalize.Online(rec)
		if err != nil {
			dropped++
			continue
		}
		normalized = append(normalized, place)
	}

	if dropped > 0 {
		r.metrics.DroppedRecords.Add(float64(dropped))
		r.log.WarnContext(ctx, "Dropped malformed provider records", "dropped", dropped)
	}

	return normalized
}

// parseLatLon recognizes a "lat,lon" coordinate literal.
func parseLatLon(start string) (*models.Coordinates, bool) {
	first, second, found := strings.Cut(start, ",")
	if !found {
		return nil, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(first), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(second), 64)
	if errLat != nil || errLon != nil {
		return nil, false
	}

	coords := models.Coordinates{Latitude: lat, Longitude: lon}
	if !coords.Valid() {
		return nil, false
	}

	return &coords, true
}
