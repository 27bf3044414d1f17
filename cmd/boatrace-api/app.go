package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/boatrace-predictor/internal/api"
	"github.com/yourusername/boatrace-predictor/internal/config"
	"github.com/yourusername/boatrace-predictor/internal/datasource"
	"github.com/yourusername/boatrace-predictor/internal/extractor"
	"github.com/yourusername/boatrace-predictor/internal/fallback"
	"github.com/yourusername/boatrace-predictor/internal/health"
	"github.com/yourusername/boatrace-predictor/internal/metrics"
	"github.com/yourusername/boatrace-predictor/internal/repository"
	"github.com/yourusername/boatrace-predictor/internal/scoring"
	"github.com/yourusername/boatrace-predictor/internal/service"
	"github.com/yourusername/boatrace-predictor/internal/venue"
)

// app wires the pipeline components together.
type app struct {
	cfg         *config.Config
	logger      *logrus.Logger
	httpClient  *datasource.RateLimitedHTTPClient
	repo        repository.VenueRepository
	predictions *service.PredictionService
	venues      *service.VenueService
}

func newApp(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*app, error) {
	policy, err := scoring.PolicyByName(cfg.Scoring.Policy)
	if err != nil {
		return nil, err
	}
	scorer, err := scoring.NewScorer(policy)
	if err != nil {
		return nil, fmt.Errorf("invalid scoring policy: %w", err)
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfig{
		Timeout:   cfg.FetchTimeout(),
		RateLimit: cfg.Scraper.RateLimit,
	}, logger)

	var opts []datasource.BoatraceOption
	if cache := datasource.NewPageCache(cfg.CacheTTL()); cache != nil {
		opts = append(opts, datasource.WithPageCache(cache))
	}
	source := datasource.NewBoatraceClient(httpClient, cfg.Scraper.BaseURL, cfg.Scraper.UserAgent, logger, opts...)

	repo, err := repository.NewVenueRepository(ctx, &cfg.Database)
	if err != nil {
		_ = httpClient.Close()
		return nil, fmt.Errorf("failed to open venue store: %w", err)
	}

	a := &app{
		cfg:        cfg,
		logger:     logger,
		httpClient: httpClient,
		repo:       repo,
		predictions: service.NewPredictionService(
			source,
			extractor.New(),
			fallback.NewGenerator(),
			scorer,
			venue.NewStaticDirectory(),
			logger,
		),
		venues: service.NewVenueService(repo, venue.Seed(), cfg.Database.Driver, logger),
	}
	return a, nil
}

// Serve seeds the venue table and runs the API until ctx is done.
func (a *app) Serve(ctx context.Context) error {
	if err := a.venues.Initialize(ctx); err != nil {
		return err
	}

	if a.cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	hs := health.NewServer(health.Config{
		ServiceName: a.cfg.App.Name,
		Version:     a.cfg.App.Version,
		Logger:      a.logger,
		Store:       a.venues,
	})

	server := api.NewServer(api.Deps{
		Config:    a.cfg,
		Predictor: a.predictions,
		Venues:    a.venues,
		Health:    hs,
		Logger:    a.logger,
	})

	hs.SetReady(true)
	defer hs.SetReady(false)
	return server.ListenAndServe(ctx)
}

func (a *app) Close() {
	if err := a.repo.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close venue store")
	}
	if err := a.httpClient.Close(); err != nil {
		a.logger.WithError(err).Warn("Failed to close HTTP client")
	}
}
