// Package server exposes the recommendation pipeline over HTTP. It is a
// thin boundary: request decoding, error-to-status mapping and response
// shaping live here, the pipeline itself in internal/service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/weekendwish/compass/internal/models"
	"github.com/weekendwish/compass/internal/ranking"
	"github.com/weekendwish/compass/internal/service"
)

// Recommender is the single operation the boundary consumes.
type Recommender interface {
	Recommend(ctx context.Context, req models.RecommendationRequest) (*service.Result, error)
}

// Server handles the recommendation API endpoint.
type Server struct {
	log         *slog.Logger
	recommender Recommender
}

// New creates the HTTP boundary over a recommender.
func New(log *slog.Logger, recommender Recommender) *Server {
	return &Server{log: log, recommender: recommender}
}

// Register attaches the API routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/recommend", s.handleRecommend)
}

// coordsDTO is the serialized form of resolved coordinates.
type coordsDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// placeDTO is one serialized result entry.
type placeDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Address    string  `json:"address"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Popularity float64 `json:"popularity"`
	Price      int     `json:"price"` // 0 means the source reported no price
	Photo      string  `json:"photo"`
	DistanceM  float64 `json:"distance_m"`
	Score      float64 `json:"score"`
}

// recommendResponse is the success envelope. Results are ordered by the
// ranker; an empty list is a valid outcome, never conflated with an error.
type recommendResponse struct {
	StartCoords     coordsDTO  `json:"start_coords"`
	BudgetPerPerson float64    `json:"budget_per_person"`
	Results         []placeDTO `json:"results"`
}

// errorResponse is the failure envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// handleRecommend serves POST /api/recommend.
func (s *Server) handleRecommend(writer http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		s.writeError(req.Context(), writer, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var request models.RecommendationRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		s.writeError(req.Context(), writer, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.recommender.Recommend(req.Context(), request)
	if err != nil {
		s.writeError(req.Context(), writer, statusFor(err), err.Error())
		return
	}

	response := recommendResponse{
		StartCoords:     coordsDTO{Lat: result.Center.Latitude, Lon: result.Center.Longitude},
		BudgetPerPerson: result.BudgetPerPerson,
		Results:         toDTOs(result.Places),
	}

	s.writeJSON(req.Context(), writer, http.StatusOK, response)
}

// statusFor maps pipeline errors to HTTP statuses: invalid requests and
// unresolvable starts are the caller's fault, exhausted data sources are
// an upstream failure, anything else is internal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyStart),
		errors.Is(err, models.ErrInvalidBudget),
		errors.Is(err, models.ErrInvalidPeople),
		errors.Is(err, models.ErrInvalidRadius),
		errors.Is(err, service.ErrGeocode):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoData):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toDTOs(ranked []ranking.Ranked) []placeDTO {
	dtos := make([]placeDTO, 0, len(ranked))
	for _, entry := range ranked {
		dtos = append(dtos, placeDTO{
			ID:         entry.ID,
			Name:       entry.Name,
			Address:    entry.Address,
			Lat:        entry.Coords.Latitude,
			Lon:        entry.Coords.Longitude,
			Popularity: entry.Popularity,
			Price:      int(entry.Price),
			Photo:      entry.Photo,
			DistanceM:  entry.DistanceMeters,
			Score:      entry.Score,
		})
	}

	return dtos
}

func (s *Server) writeJSON(ctx context.Context, writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		s.log.ErrorContext(ctx, "failed to write response", "error", err)
	}
}

func (s *Server) writeError(ctx context.Context, writer http.ResponseWriter, status int, msg string) {
	s.writeJSON(ctx, writer, status, errorResponse{Error: msg})
}
