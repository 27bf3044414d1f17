// Package api exposes the race prediction service over JSON HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/boatrace-predictor/internal/config"
	"github.com/yourusername/boatrace-predictor/internal/health"
	"github.com/yourusername/boatrace-predictor/internal/metrics"
	"github.com/yourusername/boatrace-predictor/internal/models"
)

// Predictor produces a prediction for a validated race query.
type Predictor interface {
	Predict(ctx context.Context, query models.RaceQuery) (*models.RacePrediction, error)
}

// VenueStore lists and rebuilds the persisted venue table.
type VenueStore interface {
	List(ctx context.Context) ([]models.Venue, error)
	Reset(ctx context.Context, remoteAddr string) (int, error)
}

// Deps holds everything the API needs.
type Deps struct {
	Config    *config.Config
	Predictor Predictor
	Venues    VenueStore
	Health    *health.Server
	Logger    *logrus.Logger
}

// Server is the HTTP API server.
type Server struct {
	cfg       *config.Config
	predictor Predictor
	venues    VenueStore
	health    *health.Server
	logger    *logrus.Entry
	handler   http.Handler
	server    *http.Server
}

// NewServer builds the router and wraps it with CORS.
func NewServer(deps Deps) *Server {
	s := &Server{
		cfg:       deps.Config,
		predictor: deps.Predictor,
		venues:    deps.Venues,
		health:    deps.Health,
		logger:    deps.Logger.WithField("component", "api"),
	}
	s.handler = newCORS(deps.Config.Server.AllowedOrigins).Handler(s.routes())
	return s
}

// Handler returns the complete HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.accessLog)

	r.HandleFunc("/", s.handleHome).Methods(http.MethodGet)
	r.HandleFunc("/api/venues", s.handleVenues).Methods(http.MethodGet)
	r.HandleFunc("/api/race/{date}/{venue_code}/{race_number}", s.handleRace).Methods(http.MethodGet)
	r.HandleFunc("/api/reset-db", s.handleResetDB).Methods(http.MethodGet, http.MethodPost)

	if s.health != nil {
		s.health.Register(r)
	}
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, metrics.Handler()).Methods(http.MethodGet)
	}

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "endpoint not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              s.cfg.ListenAddress(),
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.server.Addr).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("API server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

// newCORS allows every origin unless an explicit list is configured.
func newCORS(allowedOrigins []string) *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		opts.AllowOriginFunc = func(string) bool { return true }
	} else {
		opts.AllowedOrigins = allowedOrigins
	}
	return cors.New(opts)
}
