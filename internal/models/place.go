package models

// Source identifies which data source a place came from.
type Source string

const (
	// SourceOnline marks places fetched from the live places API.
	SourceOnline Source = "online"
	// SourceOffline marks places loaded from the offline dataset.
	SourceOffline Source = "offline"
)

// PriceLevel is an ordinal category representing relative cost.
// Levels follow the Foursquare convention: 1 (cheap) through 4 (very
// expensive). PriceUnknown means the source reported no price data;
// such places are never excluded by the budget filter.
type PriceLevel int

// PriceUnknown is the zero value for PriceLevel.
const PriceUnknown PriceLevel = 0

// Known reports whether the price level carries actual price data.
func (p PriceLevel) Known() bool {
	return p >= 1 && p <= 4
}

// Place is the canonical representation of a point of interest. It is
// constructed once by the normalizer and never mutated afterwards.
//
// Coordinates are always present and valid; every other field is
// optional. An absent popularity is zero, which ranks lowest. An absent
// price is PriceUnknown. Absent address and photo are empty strings.
type Place struct {
	ID         string      `json:"id"`         // Unique identifier within its source.
	Name       string      `json:"name"`       // Display name.
	Coords     Coordinates `json:"coords"`     // Geographical location, always valid.
	Address    string      `json:"address"`    // Formatted address, may be empty.
	Popularity float64     `json:"popularity"` // Unitless popularity score, higher is better.
	Price      PriceLevel  `json:"price"`      // Ordinal price category, PriceUnknown if absent.
	Photo      string      `json:"photo"`      // Photo URL, may be empty.
	Source     Source      `json:"source"`     // Which data source produced this place.
}
