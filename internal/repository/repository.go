package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/boatrace-predictor/internal/config"
	"github.com/yourusername/boatrace-predictor/internal/database"
)

// NewVenueRepository opens the venue store selected by cfg.Driver
func NewVenueRepository(ctx context.Context, cfg *config.DatabaseConfig) (VenueRepository, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return NewMemoryVenueRepository(), nil
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return NewSQLiteVenueRepository(db), nil
	case config.DriverPostgres:
		db, err := database.NewDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewPostgresVenueRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
