package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/weekendwish/compass/internal/models"
	"github.com/weekendwish/compass/internal/normalize"
)

// NewFromCSV loads the catalog from a tabular dataset file. The header
// row drives the column mapping: "name", "lat" and "lon" are required,
// "id", "popularity", "price_tier" (or "price"), "address" and "photo"
// are optional. Rows that fail offline normalization, above all rows
// without valid coordinates, are dropped and counted, not fatal.
// Only an unreadable file, a missing required column or a dataset with
// zero usable rows yields ErrCatalogUnavailable.
func NewFromCSV(path string, log *slog.Logger) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open dataset %q: %w", ErrCatalogUnavailable, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // rows are validated individually below

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read dataset header: %w", ErrCatalogUnavailable, err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	var placeList []models.Place
	dropped := 0
	rowNum := 0

	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		rowNum++
		if readErr != nil {
			dropped++
			continue
		}

		place, normErr := normalize.Offline(cols.record(row, rowNum))
		if normErr != nil {
			dropped++
			continue
		}
		placeList = append(placeList, place)
	}

	if dropped > 0 {
		log.Warn("Dropped malformed dataset rows", "dropped", dropped, "path", path)
	}

	if len(placeList) == 0 {
		return nil, fmt.Errorf("%w: dataset %q has no usable rows", ErrCatalogUnavailable, path)
	}

	log.Info("Offline catalog loaded", "places", len(placeList), "path", path)

	return New(placeList, log), nil
}

// columns holds the index of each recognized dataset column, -1 when
// the column is absent.
type columns struct {
	id, name, lat, lon, popularity, price, address, photo int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{id: -1, name: -1, lat: -1, lon: -1, popularity: -1, price: -1, address: -1, photo: -1}

	for idx, raw := range header {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "id":
			cols.id = idx
		case "name":
			cols.name = idx
		case "lat", "latitude":
			cols.lat = idx
		case "lon", "lng", "longitude":
			cols.lon = idx
		case "popularity":
			cols.popularity = idx
		case "price_tier", "price":
			cols.price = idx
		case "address":
			cols.address = idx
		case "photo", "photo_url":
			cols.photo = idx
		}
	}

	if cols.name == -1 || cols.lat == -1 || cols.lon == -1 {
		return cols, errors.New("dataset header must contain name, lat and lon columns")
	}

	return cols, nil
}

// record converts one CSV row into an offline record. Unparseable
// coordinates become NaN, which the normalizer rejects as out of range.
// A missing id column gets a synthetic per-row identifier so that the
// dataset of the original pre-processing scripts, which carries none,
// still loads.
func (c columns) record(row []string, rowNum int) normalize.OfflineRecord {
	rec := normalize.OfflineRecord{
		ID:      fmt.Sprintf("offline-%d", rowNum),
		Lat:     math.NaN(),
		Lon:     math.NaN(),
		Name:    field(row, c.name),
		Address: field(row, c.address),
		Photo:   field(row, c.photo),
	}

	if id := field(row, c.id); id != "" {
		rec.ID = id
	}
	if lat, err := strconv.ParseFloat(field(row, c.lat), 64); err == nil {
		rec.Lat = lat
	}
	if lon, err := strconv.ParseFloat(field(row, c.lon), 64); err == nil {
		rec.Lon = lon
	}
	if pop, err := strconv.ParseFloat(field(row, c.popularity), 64); err == nil {
		rec.Popularity = pop
	}
	if price, err := strconv.ParseFloat(field(row, c.price), 64); err == nil {
		rec.Price = int(price)
	}

	return rec
}

// field safely extracts a trimmed column value from a possibly short row.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
