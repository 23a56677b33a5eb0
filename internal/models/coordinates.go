package models

// Coordinates represents a geographical point defined by its latitude and longitude.
type Coordinates struct {
	Latitude  float64 // Latitude of the geographical point, in degrees.
	Longitude float64 // Longitude of the geographical point, in degrees.
}

// Valid reports whether the point lies within the valid latitude and
// longitude ranges (±90 / ±180 degrees).
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
