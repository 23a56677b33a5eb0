package geocoding

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/weekendwish/compass/internal/models"
)

// ErrUnknownLocality is returned when a location does not match any
// entry in the static locality table.
var ErrUnknownLocality = errors.New("locality not present in the static table")

// puneLocalities maps well-known localities of the supported city to
// their coordinates. Lookup keys are lowercase. The table backs the
// offline geocoding path: it answers without any network call, so it is
// both a keyless provider and the fallback when a remote provider fails.
var puneLocalities = map[string]models.Coordinates{
	"pune":          {Latitude: 18.5204, Longitude: 73.8567},
	"kothrud":       {Latitude: 18.5074, Longitude: 73.8077},
	"shivajinagar":  {Latitude: 18.5308, Longitude: 73.8470},
	"deccan":        {Latitude: 18.5158, Longitude: 73.8415},
	"hinjewadi":     {Latitude: 18.5913, Longitude: 73.7389},
	"baner":         {Latitude: 18.5599, Longitude: 73.7797},
	"aundh":         {Latitude: 18.5584, Longitude: 73.8076},
	"viman nagar":   {Latitude: 18.5679, Longitude: 73.9143},
	"koregaon park": {Latitude: 18.5362, Longitude: 73.8939},
	"camp":          {Latitude: 18.5167, Longitude: 73.8797},
	"hadapsar":      {Latitude: 18.5089, Longitude: 73.9260},
	"kharadi":       {Latitude: 18.5515, Longitude: 73.9347},
	"wakad":         {Latitude: 18.5983, Longitude: 73.7614},
	"swargate":      {Latitude: 18.5018, Longitude: 73.8636},
	"katraj":        {Latitude: 18.4575, Longitude: 73.8677},
	"pimpri":        {Latitude: 18.6298, Longitude: 73.7997},
	"chinchwad":     {Latitude: 18.6279, Longitude: 73.8009},
	"magarpatta":    {Latitude: 18.5159, Longitude: 73.9290},
	"sinhagad road": {Latitude: 18.4646, Longitude: 73.8237},
	"pashan":        {Latitude: 18.5420, Longitude: 73.7868},
	"bavdhan":       {Latitude: 18.5125, Longitude: 73.7805},
	"warje":         {Latitude: 18.4824, Longitude: 73.8004},
	"yerawada":      {Latitude: 18.5520, Longitude: 73.8816},
	"kalyani nagar": {Latitude: 18.5483, Longitude: 73.9030},
	"sadashiv peth": {Latitude: 18.5078, Longitude: 73.8507},
}

// StaticProvider resolves locations against the built-in locality table.
// It makes no network calls, requires no API key and is safe for
// concurrent use.
type StaticProvider struct {
	localities map[string]models.Coordinates
	log        *slog.Logger
}

// NewStaticProvider creates a static provider backed by the built-in
// locality table of the supported city.
func NewStaticProvider(log *slog.Logger) *StaticProvider {
	return &StaticProvider{localities: puneLocalities, log: log}
}

// Geocode resolves a location against the locality table. Matching is
// case-insensitive; a comma-separated location is also tried by its
// first component, so "Kothrud, Pune" resolves through "kothrud".
func (sp *StaticProvider) Geocode(ctx context.Context, location string) (*models.Coordinates, error) {
	sp.log.DebugContext(ctx, "Geocoding using static locality table", "location", location)

	key := strings.ToLower(strings.TrimSpace(location))
	if coords, ok := sp.localities[key]; ok {
		return &coords, nil
	}

	// Try the first comma-separated component: "Kothrud, Pune" -> "kothrud".
	if first, _, found := strings.Cut(key, ","); found {
		if coords, ok := sp.localities[strings.TrimSpace(first)]; ok {
			return &coords, nil
		}
	}

	return nil, ErrUnknownLocality
}
