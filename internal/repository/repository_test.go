package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/boatrace-predictor/internal/config"
	"github.com/yourusername/boatrace-predictor/internal/database"
	"github.com/yourusername/boatrace-predictor/internal/models"
	"github.com/yourusername/boatrace-predictor/internal/venue"
)

func venueRepositories(t *testing.T) map[string]VenueRepository {
	t.Helper()
	return map[string]VenueRepository{
		config.DriverMemory: NewMemoryVenueRepository(),
		config.DriverSQLite: NewSQLiteVenueRepository(database.SetupTestSQLite(t)),
	}
}

func TestVenueRepository_ResetAndList(t *testing.T) {
	for name, repo := range venueRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.Reset(ctx, venue.Seed()))

			venues, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, venues, 24)
			assert.Equal(t, "01", venues[0].Code)
			assert.Equal(t, "桐生", venues[0].Name)
			assert.Equal(t, "24", venues[23].Code)
			assert.Equal(t, "大村", venues[23].Name)

			for i := 1; i < len(venues); i++ {
				assert.Less(t, venues[i-1].Code, venues[i].Code)
			}
		})
	}
}

func TestVenueRepository_ResetReplacesContents(t *testing.T) {
	for name, repo := range venueRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, repo.Reset(ctx, venue.Seed()))
			require.NoError(t, repo.Reset(ctx, []models.Venue{
				{Code: "12", Name: "住之江", Location: "大阪府大阪市", Region: "近畿", WaterType: "淡水"},
			}))

			venues, err := repo.List(ctx)
			require.NoError(t, err)
			require.Len(t, venues, 1)
			assert.Equal(t, "住之江", venues[0].Name)
		})
	}
}

func TestVenueRepository_GetByCode(t *testing.T) {
	for name, repo := range venueRepositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, repo.Reset(ctx, venue.Seed()))

			v, err := repo.GetByCode(ctx, "06")
			require.NoError(t, err)
			assert.Equal(t, "浜名湖", v.Name)
			assert.Equal(t, "汽水", v.WaterType)

			_, err = repo.GetByCode(ctx, "99")
			assert.ErrorIs(t, err, models.ErrNotFound)
		})
	}
}

func TestVenueRepository_ListBeforeReset(t *testing.T) {
	for name, repo := range venueRepositories(t) {
		t.Run(name, func(t *testing.T) {
			_, err := repo.List(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestVenueRepository_Ping(t *testing.T) {
	for name, repo := range venueRepositories(t) {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, repo.Ping(context.Background()))
		})
	}
}

func TestNewVenueRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := NewVenueRepository(ctx, &config.DatabaseConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryVenueRepository{}, repo)

	repo, err = NewVenueRepository(ctx, &config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "venues.db"),
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteVenueRepository{}, repo)
	require.NoError(t, repo.Reset(ctx, venue.Seed()))
	require.NoError(t, repo.Close())

	_, err = NewVenueRepository(ctx, &config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}
