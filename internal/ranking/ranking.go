// Package ranking applies the budget and radius constraints to a set of
// candidate places and orders the survivors by a weighted popularity and
// proximity score. The ordering is total and deterministic for a fixed
// input set.
package ranking

import (
	"sort"

	"github.com/weekendwish/compass/internal/geo"
	"github.com/weekendwish/compass/internal/models"
)

// Scoring weights. Both lie in [0,1] and sum to 1; popularity dominates
// so that a well-known place slightly further away outranks an obscure
// nearby one.
const (
	// PopularityWeight scales the normalized popularity component.
	PopularityWeight = 0.7
	// DistanceWeight scales the proximity component.
	DistanceWeight = 0.3
)

// Per-person budget thresholds mapping a budget share to the highest
// affordable price level, in currency units. Taken from the budget
// heuristic of the original dataset pre-processing.
const (
	budgetLevelTwo   = 200
	budgetLevelThree = 500
	budgetLevelFour  = 1200
)

// Ranked is a place together with its computed distance from the
// request's resolved center and its rank score.
type Ranked struct {
	models.Place
	DistanceMeters float64 `json:"distance_m"`
	Score          float64 `json:"score"`
}

// MaxAffordableLevel maps a per-person budget share to the highest
// price level the party can afford.
func MaxAffordableLevel(budgetPerPerson float64) models.PriceLevel {
	switch {
	case budgetPerPerson < budgetLevelTwo:
		return 1
	case budgetPerPerson < budgetLevelThree:
		return 2
	case budgetPerPerson < budgetLevelFour:
		return 3
	default:
		return 4
	}
}

// Rank filters and orders candidate places for a request:
//
//  1. Compute the great-circle distance from center to each place.
//  2. Drop places beyond the request radius.
//  3. Drop places whose known price level exceeds the affordable level
//     for budget/people. An unknown price level never excludes a place.
//  4. Score survivors: PopularityWeight * popularity normalized against
//     the best candidate, plus DistanceWeight * (1 - distance/radius).
//  5. Sort by score descending, ties by ascending distance, then by
//     identifier, so equal inputs always produce equal output.
//
// An empty result is a valid outcome, not an error.
func Rank(candidates []models.Place, center models.Coordinates, req models.RecommendationRequest) []Ranked {
	maxLevel := MaxAffordableLevel(req.BudgetPerPerson())

	survivors := make([]Ranked, 0, len(candidates))
	maxPopularity := 0.0

	for _, place := range candidates {
		dist := geo.Distance(center, place.Coords)
		if dist > req.Radius {
			continue
		}
		if place.Price.Known() && place.Price > maxLevel {
			continue
		}

		if place.Popularity > maxPopularity {
			maxPopularity = place.Popularity
		}
		survivors = append(survivors, Ranked{Place: place, DistanceMeters: dist})
	}

	for i := range survivors {
		survivors[i].Score = score(survivors[i], maxPopularity, req.Radius)
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].Score != survivors[j].Score {
			return survivors[i].Score > survivors[j].Score
		}
		if survivors[i].DistanceMeters != survivors[j].DistanceMeters {
			return survivors[i].DistanceMeters < survivors[j].DistanceMeters
		}
		return survivors[i].ID < survivors[j].ID
	})

	return survivors
}

// score combines normalized popularity and proximity. A place with no
// popularity data scores zero on the popularity component, which ranks
// it lowest among equally distant candidates.
func score(r Ranked, maxPopularity, radius float64) float64 {
	popularity := 0.0
	if maxPopularity > 0 {
		popularity = r.Popularity / maxPopularity
	}

	proximity := 1 - r.DistanceMeters/radius
	if proximity < 0 {
		proximity = 0
	}

	return PopularityWeight*popularity + DistanceWeight*proximity
}
