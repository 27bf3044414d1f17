package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/boatrace-predictor/internal/logger"
	"github.com/yourusername/boatrace-predictor/internal/models"
	"github.com/yourusername/boatrace-predictor/internal/repository"
)

// VenueService serves the persisted venue table.
type VenueService struct {
	repo   repository.VenueRepository
	seed   []models.Venue
	driver string
	logger *logrus.Entry
	audit  *logger.AuditLogger
}

// NewVenueService creates a venue service that seeds repo with seed.
func NewVenueService(repo repository.VenueRepository, seed []models.Venue, driver string, log *logrus.Logger) *VenueService {
	return &VenueService{
		repo:   repo,
		seed:   seed,
		driver: driver,
		logger: log.WithField("component", "venues"),
		audit:  logger.NewAuditLogger(log),
	}
}

// Initialize rebuilds the venue table at startup.
func (s *VenueService) Initialize(ctx context.Context) error {
	if err := s.repo.Reset(ctx, s.seed); err != nil {
		return fmt.Errorf("failed to initialize venues: %w", err)
	}
	s.logger.WithField("venues", len(s.seed)).Info("Venue table initialized")
	return nil
}

// List returns all venues. A table that cannot be read is rebuilt once
// before giving up.
func (s *VenueService) List(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.repo.List(ctx)
	if err == nil {
		return venues, nil
	}

	s.logger.WithError(err).Warn("Venue table unreadable, rebuilding")
	if resetErr := s.repo.Reset(ctx, s.seed); resetErr != nil {
		return nil, fmt.Errorf("failed to rebuild venues: %w", resetErr)
	}
	return s.repo.List(ctx)
}

// Reset drops and reseeds the venue table on an administrator's request.
func (s *VenueService) Reset(ctx context.Context, remoteAddr string) (int, error) {
	err := s.repo.Reset(ctx, s.seed)
	s.audit.LogVenueReset(s.driver, len(s.seed), remoteAddr, time.Now(), err)
	if err != nil {
		return 0, fmt.Errorf("failed to reset venues: %w", err)
	}
	return len(s.seed), nil
}

// Ping checks the venue store.
func (s *VenueService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
