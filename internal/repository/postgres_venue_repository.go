package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/boatrace-predictor/internal/database"
	"github.com/yourusername/boatrace-predictor/internal/models"
)

// PostgresVenueRepository implements VenueRepository for PostgreSQL
type PostgresVenueRepository struct {
	db *database.DB
}

// NewPostgresVenueRepository creates a new venue repository
func NewPostgresVenueRepository(db *database.DB) *PostgresVenueRepository {
	return &PostgresVenueRepository{db: db}
}

// Reset rebuilds the venue table in a single transaction
func (r *PostgresVenueRepository) Reset(ctx context.Context, venues []models.Venue) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, dropVenuesTable); err != nil {
			return fmt.Errorf("failed to drop venues table: %w", err)
		}
		if _, err := tx.Exec(ctx, createVenuesTable); err != nil {
			return fmt.Errorf("failed to create venues table: %w", err)
		}

		batch := &pgx.Batch{}
		for _, v := range venues {
			batch.Queue(
				`INSERT INTO venues (code, name, location, region, water_type) VALUES ($1, $2, $3, $4, $5)`,
				v.Code, v.Name, v.Location, v.Region, v.WaterType,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert venues: %w", err)
		}
		return nil
	})
}

// List returns every venue ordered by code
func (r *PostgresVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.db.GetPool().Query(ctx, selectVenues)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(&v.Code, &v.Name, &v.Location, &v.Region, &v.WaterType); err != nil {
			return nil, fmt.Errorf(errScanVenue, err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

// GetByCode retrieves a single venue
func (r *PostgresVenueRepository) GetByCode(ctx context.Context, code string) (*models.Venue, error) {
	v := &models.Venue{}
	err := r.db.GetPool().QueryRow(ctx,
		`SELECT code, name, location, region, water_type FROM venues WHERE code = $1`,
		code,
	).Scan(&v.Code, &v.Name, &v.Location, &v.Region, &v.WaterType)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

// Ping verifies database connectivity
func (r *PostgresVenueRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Close closes the connection pool
func (r *PostgresVenueRepository) Close() error {
	r.db.Close()
	return nil
}
