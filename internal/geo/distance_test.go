package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weekendwish/compass/internal/geo"
	"github.com/weekendwish/compass/internal/models"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	t.Run("zero distance for identical points", func(t *testing.T) {
		t.Parallel()
		kothrud := models.Coordinates{Latitude: 18.5074, Longitude: 73.8077}

		assert.Zero(t, geo.Distance(kothrud, kothrud))
	})

	t.Run("known distance within Pune", func(t *testing.T) {
		t.Parallel()
		kothrud := models.Coordinates{Latitude: 18.5074, Longitude: 73.8077}
		shivajinagar := models.Coordinates{Latitude: 18.5308, Longitude: 73.8470}

		dist := geo.Distance(kothrud, shivajinagar)

		// Roughly 4.9 km between the two localities.
		assert.InDelta(t, 4900, dist, 300)
	})

	t.Run("symmetric", func(t *testing.T) {
		t.Parallel()
		a := models.Coordinates{Latitude: 18.5074, Longitude: 73.8077}
		b := models.Coordinates{Latitude: 18.5599, Longitude: 73.7797}

		assert.InEpsilon(t, geo.Distance(a, b), geo.Distance(b, a), 1e-9)
	})

	t.Run("antimeridian neighbours are close", func(t *testing.T) {
		t.Parallel()
		west := models.Coordinates{Latitude: 0, Longitude: 179.999}
		east := models.Coordinates{Latitude: 0, Longitude: -179.999}

		assert.Less(t, geo.Distance(west, east), 300.0)
	})
}
