package models

import (
	"errors"
	"strings"
)

// Validation errors for RecommendationRequest.
var (
	ErrEmptyStart    = errors.New("starting location is required")
	ErrInvalidBudget = errors.New("budget must be a positive number")
	ErrInvalidPeople = errors.New("people must be a positive integer")
	ErrInvalidRadius = errors.New("radius must be a positive number of meters")
)

// RecommendationRequest describes a single recommendation query: where
// the user starts, how much the party can spend in total, how many
// people share the budget, and how far they are willing to travel.
type RecommendationRequest struct {
	Start  string  `json:"start"`  // Free-text starting location, or a "lat,lon" literal.
	Budget float64 `json:"budget"` // Total budget in currency units.
	People int     `json:"people"` // Party size, defaults to 1.
	Radius float64 `json:"radius"` // Search radius in meters, defaults to the configured value.
}

// Normalize trims the start string and applies defaults for absent
// fields: people defaults to 1, radius to defaultRadius.
func (r *RecommendationRequest) Normalize(defaultRadius float64) {
	r.Start = strings.TrimSpace(r.Start)
	if r.People == 0 {
		r.People = 1
	}
	if r.Radius == 0 {
		r.Radius = defaultRadius
	}
}

// Validate checks the request after Normalize has been applied.
func (r *RecommendationRequest) Validate() error {
	if r.Start == "" {
		return ErrEmptyStart
	}
	if r.Budget <= 0 {
		return ErrInvalidBudget
	}
	if r.People < 1 {
		return ErrInvalidPeople
	}
	if r.Radius <= 0 {
		return ErrInvalidRadius
	}
	return nil
}

// BudgetPerPerson returns the share of the total budget available to
// each member of the party.
func (r *RecommendationRequest) BudgetPerPerson() float64 {
	people := r.People
	if people < 1 {
		people = 1
	}
	return r.Budget / float64(people)
}
