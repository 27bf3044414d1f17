package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

type homeResponse struct {
	Message   string   `json:"message"`
	Version   string   `json:"version"`
	Endpoints []string `json:"endpoints"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
}

type raceResponse struct {
	Success  bool                   `json:"success"`
	RaceData *models.RacePrediction `json:"race_data"`
}

type venuesResponse struct {
	Success bool           `json:"success"`
	Venues  []models.Venue `json:"venues"`
}

type resetResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Venues  int    `json:"venues"`
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, homeResponse{
		Message: "Boatrace race prediction API",
		Version: s.cfg.App.Version,
		Endpoints: []string{
			"/api/venues - all venues",
			"/api/race/{date}/{venue_code}/{race_number} - race prediction",
			"/api/reset-db - rebuild the venue table (admin)",
			"/health - liveness",
			"/ready - readiness",
		},
	})
}

func (s *Server) handleVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.venues.List(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list venues")
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, venuesResponse{Success: true, Venues: venues})
}

// handleRace validates the path before anything touches the network.
func (s *Server) handleRace(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query, err := models.NewRaceQuery(vars["date"], vars["venue_code"], vars["race_number"])
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	prediction, err := s.predictor.Predict(r.Context(), query)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, raceResponse{Success: true, RaceData: prediction})
}

func (s *Server) handleResetDB(w http.ResponseWriter, r *http.Request) {
	n, err := s.venues.Reset(r.Context(), r.RemoteAddr)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resetResponse{
		Success: true,
		Message: "venue table rebuilt",
		Venues:  n,
	})
}

func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Message, Field: verr.Field})
		return
	}
	s.logger.WithError(err).Error("Race prediction failed")
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Warn("Failed to write response")
	}
}
