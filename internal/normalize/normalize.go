// Package normalize maps provider-specific and catalog-specific records
// into the canonical Place representation. The input shapes form a
// closed set, online records from the places API and offline rows from
// the dataset, and each variant is mapped explicitly, so field-presence
// checks stay here instead of leaking into the pipeline.
package normalize

import (
	"errors"

	"github.com/weekendwish/compass/internal/models"
	"github.com/weekendwish/compass/internal/places"
)

// ErrMalformedRecord is returned when a record lacks usable coordinates
// or an identifier/name. Callers drop such records and count the drops;
// the error never aborts a request.
var ErrMalformedRecord = errors.New("record lacks usable coordinates or identifier")

// OfflineRecord is one row of the offline dataset before normalization.
// Both the CSV and the Postgres catalog sources produce this shape.
type OfflineRecord struct {
	ID         string
	Name       string
	Lat        float64
	Lon        float64
	Address    string
	Popularity float64
	Price      int
	Photo      string
}

// Online maps a raw places-API record to a canonical Place.
//
// Defaults for absent fields: popularity stays 0 (ranks lowest), price
// outside 1..4 becomes PriceUnknown, address falls back from the
// formatted address through the street address to the locality, photo
// stays empty.
func Online(rec places.Record) (models.Place, error) {
	coords := models.Coordinates{Latitude: rec.Geocodes.Main.Latitude, Longitude: rec.Geocodes.Main.Longitude}
	if rec.FsqID == "" || rec.Name == "" || !usable(coords) {
		return models.Place{}, ErrMalformedRecord
	}

	address := rec.Location.FormattedAddress
	if address == "" {
		address = rec.Location.Address
	}
	if address == "" {
		address = rec.Location.Locality
	}

	return models.Place{
		ID:         rec.FsqID,
		Name:       rec.Name,
		Coords:     coords,
		Address:    address,
		Popularity: rec.Popularity,
		Price:      priceLevel(rec.Price),
		Photo:      rec.PhotoURL(),
		Source:     models.SourceOnline,
	}, nil
}

// Offline maps a dataset row to a canonical Place. The same defaults as
// for online records apply.
func Offline(rec OfflineRecord) (models.Place, error) {
	coords := models.Coordinates{Latitude: rec.Lat, Longitude: rec.Lon}
	if rec.ID == "" || rec.Name == "" || !usable(coords) {
		return models.Place{}, ErrMalformedRecord
	}

	return models.Place{
		ID:         rec.ID,
		Name:       rec.Name,
		Coords:     coords,
		Address:    rec.Address,
		Popularity: rec.Popularity,
		Price:      priceLevel(rec.Price),
		Photo:      rec.Photo,
		Source:     models.SourceOffline,
	}, nil
}

// usable reports whether coordinates are present and in range. Records
// that omit coordinates decode to the zero point, which no place in the
// supported city occupies, so the exact (0,0) counts as absent.
func usable(c models.Coordinates) bool {
	if c.Latitude == 0 && c.Longitude == 0 {
		return false
	}
	return c.Valid()
}

// priceLevel converts a raw integer price tier to a PriceLevel, mapping
// anything outside the 1..4 range to PriceUnknown.
func priceLevel(raw int) models.PriceLevel {
	level := models.PriceLevel(raw)
	if !level.Known() {
		return models.PriceUnknown
	}
	return level
}
