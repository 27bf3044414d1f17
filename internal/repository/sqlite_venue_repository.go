package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

const errScanVenue = "failed to scan venue: %w"

// SQLiteVenueRepository implements VenueRepository on a database/sql handle
// opened with the modernc SQLite driver
type SQLiteVenueRepository struct {
	db *sql.DB
}

// NewSQLiteVenueRepository creates a new venue repository
func NewSQLiteVenueRepository(db *sql.DB) *SQLiteVenueRepository {
	return &SQLiteVenueRepository{db: db}
}

// Reset rebuilds the venue table in a single transaction
func (r *SQLiteVenueRepository) Reset(ctx context.Context, venues []models.Venue) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, dropVenuesTable); err != nil {
		return fmt.Errorf("failed to drop venues table: %w", err)
	}
	if _, err = tx.ExecContext(ctx, createVenuesTable); err != nil {
		return fmt.Errorf("failed to create venues table: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO venues (code, name, location, region, water_type) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare venue insert: %w", err)
	}
	defer stmt.Close()

	for _, v := range venues {
		if _, err = stmt.ExecContext(ctx, v.Code, v.Name, v.Location, v.Region, v.WaterType); err != nil {
			return fmt.Errorf("failed to insert venue %s: %w", v.Code, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// List returns every venue ordered by code
func (r *SQLiteVenueRepository) List(ctx context.Context) ([]models.Venue, error) {
	rows, err := r.db.QueryContext(ctx, selectVenues)
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
func (r *SQLiteVenueRepository) GetByCode(ctx context.Context, code string) (*models.Venue, error) {
	v := &models.Venue{}
	err := r.db.QueryRowContext(ctx,
		`SELECT code, name, location, region, water_type FROM venues WHERE code = ?`,
		code,
	).Scan(&v.Code, &v.Name, &v.Location, &v.Region, &v.WaterType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return v, nil
}

// Ping verifies database connectivity
func (r *SQLiteVenueRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database handle
func (r *SQLiteVenueRepository) Close() error {
	return r.db.Close()
}
