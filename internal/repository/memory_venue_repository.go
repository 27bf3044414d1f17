package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

var errTableMissing = errors.New("venues table does not exist")

// MemoryVenueRepository keeps venues in process memory. It starts without a
// table, like a fresh database, until Reset is called.
type MemoryVenueRepository struct {
	mu     sync.RWMutex
	venues map[string]models.Venue
}

// NewMemoryVenueRepository creates an empty in-memory repository
func NewMemoryVenueRepository() *MemoryVenueRepository {
	return &MemoryVenueRepository{}
}

// Reset replaces the stored venues
func (r *MemoryVenueRepository) Reset(_ context.Context, venues []models.Venue) error {
	table := make(map[string]models.Venue, len(venues))
	for _, v := range venues {
		if _, dup := table[v.Code]; dup {
			return errors.New("duplicate venue code " + v.Code)
		}
		table[v.Code] = v
	}

	r.mu.Lock()
	r.venues = table
	r.mu.Unlock()
	return nil
}

// List returns every venue ordered by numeric code
func (r *MemoryVenueRepository) List(_ context.Context) ([]models.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.venues == nil {
		return nil, errTableMissing
	}

	venues := make([]models.Venue, 0, len(r.venues))
	for _, v := range r.venues {
		venues = append(venues, v)
	}
	sort.Slice(venues, func(i, j int) bool {
		a, _ := strconv.Atoi(venues[i].Code)
		b, _ := strconv.Atoi(venues[j].Code)
		return a < b
	})
	return venues, nil
}

// GetByCode retrieves a single venue
func (r *MemoryVenueRepository) GetByCode(_ context.Context, code string) (*models.Venue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.venues == nil {
		return nil, errTableMissing
	}
	v, ok := r.venues[code]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &v, nil
}

// Ping always succeeds
func (r *MemoryVenueRepository) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op
func (r *MemoryVenueRepository) Close() error {
	return nil
}
