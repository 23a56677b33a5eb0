package geo

import (
	"math"

	"github.com/weekendwish/compass/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used for every proximity
// calculation in the service. All components must share this constant
// so that computed distances are reproducible across the pipeline.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two points in
// meters, computed with the haversine formula.
func Distance(from, to models.Coordinates) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
