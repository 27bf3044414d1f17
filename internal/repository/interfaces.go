package repository

import (
	"context"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// VenueRepository defines the interface for the persisted venue table
type VenueRepository interface {
	// Reset drops the venue table, recreates it and inserts venues.
	Reset(ctx context.Context, venues []models.Venue) error
	// List returns all venues ordered by numeric code.
	List(ctx context.Context) ([]models.Venue, error)
	// GetByCode returns models.ErrNotFound when no venue has the code.
	GetByCode(ctx context.Context, code string) (*models.Venue, error)
	Ping(ctx context.Context) error
	Close() error
}
