package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/weekendwish/compass/internal/models"
	"github.com/weekendwish/compass/internal/normalize"
)

// Database defines the subset of a pgx pool the catalog needs. The
// narrow interface keeps the loader mockable in tests.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewFromPostgres loads the catalog from the places table of the
// pre-processed dataset database. Like the CSV source, rows that fail
// offline normalization are dropped and counted; only query or scan
// failures and an empty usable set are fatal.
func NewFromPostgres(ctx context.Context, db Database, log *slog.Logger) (*Catalog, error) {
	query := `
		SELECT place_id, name, latitude, longitude,
			COALESCE(address, ''), COALESCE(popularity, 0),
			COALESCE(price_tier, 0), COALESCE(photo_url, '')
		FROM public.places;
	`

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query places: %w", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	var placeList []models.Place
	dropped := 0

	for rows.Next() {
		var rec normalize.OfflineRecord
		if errScan := rows.Scan(
			&rec.ID, &rec.Name, &rec.Lat, &rec.Lon,
			&rec.Address, &rec.Popularity, &rec.Price, &rec.Photo,
		); errScan != nil {
			return nil, fmt.Errorf("%w: failed to scan place row: %w", ErrCatalogUnavailable, errScan)
		}

		place, normErr := normalize.Offline(rec)
		if normErr != nil {
			dropped++
			continue
		}
		placeList = append(placeList, place)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read place rows: %w", ErrCatalogUnavailable, err)
	}

	if dropped > 0 {
		log.Warn("Dropped malformed dataset rows", "dropped", dropped)
	}

	if len(placeList) == 0 {
		return nil, fmt.Errorf("%w: places table has no usable rows", ErrCatalogUnavailable)
	}

	log.Info("Offline catalog loaded from database", "places", len(placeList))

	return New(placeList, log), nil
}
