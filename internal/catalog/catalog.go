// Package catalog holds the offline places dataset: an in-memory,
// read-only table loaded once at process start from either a CSV file
// or a Postgres table, queryable by proximity.
package catalog

import (
	"errors"
	"log/slog"

	"github.com/weekendwish/compass/internal/geo"
	"github.com/weekendwish/compass/internal/models"
)

// ErrCatalogUnavailable is returned when the offline dataset cannot be
// loaded at startup. The caller treats it as a fatal initialization
// error; it never occurs per request.
var ErrCatalogUnavailable = errors.New("offline catalog unavailable")

// Catalog is the in-memory offline dataset. After construction it is
// never written to, so concurrent Query calls need no locking.
type Catalog struct {
	places []models.Place
	log    *slog.Logger
}

// New wraps an already-normalized set of places into a catalog.
func New(places []models.Place, log *slog.Logger) *Catalog {
	return &Catalog{places: places, log: log}
}

// Len returns the number of cataloged places.
func (c *Catalog) Len() int {
	return len(c.places)
}

// Query returns every cataloged place within radiusMeters of center, in
// no particular order. Ordering is the ranker's responsibility. The
// returned slice is freshly allocated per call, so callers may keep it
// across requests without sharing state.
func (c *Catalog) Query(center models.Coordinates, radiusMeters float64) []models.Place {
	results := make([]models.Place, 0)
	for _, place := range c.places {
		if geo.Distance(center, place.Coords) <= radiusMeters {
			results = append(results, place)
		}
	}

	return results
}
