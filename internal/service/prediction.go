package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/boatrace-predictor/internal/datasource"
	"github.com/yourusername/boatrace-predictor/internal/extractor"
	"github.com/yourusername/boatrace-predictor/internal/fallback"
	"github.com/yourusername/boatrace-predictor/internal/logger"
	"github.com/yourusername/boatrace-predictor/internal/metrics"
	"github.com/yourusername/boatrace-predictor/internal/models"
	"github.com/yourusername/boatrace-predictor/internal/scoring"
	"github.com/yourusername/boatrace-predictor/internal/venue"
)

var errPipelinePanic = errors.New("prediction pipeline panicked")

// Fallback reasons reported in logs
const (
	reasonFetchFailed  = "fetch_failed"
	reasonNoRows       = "no_rows"
	reasonPartialRows  = "partial_extraction"
	reasonPipelineFail = "pipeline_error"
)

// PredictionService runs fetch, extract, fallback and score for one race.
// It holds no per-request state and is safe for concurrent use.
type PredictionService struct {
	source    datasource.DataSource
	extractor *extractor.Extractor
	validator *DataValidator
	generator *fallback.Generator
	scorer    *scoring.Scorer
	venues    *venue.Directory
	logger    *logger.RaceLogger
	now       func() time.Time
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	source datasource.DataSource,
	ext *extractor.Extractor,
	generator *fallback.Generator,
	scorer *scoring.Scorer,
	venues *venue.Directory,
	log *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		source:    source,
		extractor: ext,
		validator: NewDataValidator(),
		generator: generator,
		scorer:    scorer,
		venues:    venues,
		logger:    logger.NewRaceLogger(log),
		now:       time.Now,
	}
}

// Predict builds a scored roster for the race. Upstream failures never
// surface as errors; they degrade the roster's data source instead. The only
// error returned is a *models.ValidationError for a malformed query.
func (s *PredictionService) Predict(ctx context.Context, query models.RaceQuery) (*models.RacePrediction, error) {
	start := time.Now()

	if err := query.Validate(); err != nil {
		return nil, err
	}
	query.VenueCode = models.PadVenueCode(query.VenueCode)

	roster := s.assemble(ctx, query)

	prediction := &models.RacePrediction{
		ID:                 uuid.New(),
		Date:               query.Date,
		VenueCode:          query.VenueCode,
		VenueName:          s.venues.Name(query.VenueCode),
		RaceNumber:         query.RaceNumber,
		Roster:             roster.Records,
		DataSource:         roster.DataSource,
		ExtractedCount:     roster.ExtractedCount,
		ExtractionStrategy: roster.Strategy,
		ScoringPolicy:      s.scorer.Policy().Name,
		GeneratedAt:        s.now().UTC(),
	}

	duration := time.Since(start)
	metrics.RecordRoster(string(roster.DataSource), roster.SyntheticCount())
	metrics.RecordPrediction(duration.Seconds())
	s.logger.LogPrediction(prediction.ID.String(), query.String(), prediction.VenueName,
		string(prediction.DataSource), prediction.ScoringPolicy, duration)

	return prediction, nil
}

// assemble always returns a valid, scored roster.
func (s *PredictionService) assemble(ctx context.Context, query models.RaceQuery) models.Roster {
	roster, err := s.tryAssemble(ctx, query)
	if err == nil {
		return roster
	}

	s.logger.WithError(err).WithField("race", query.String()).Error("Prediction pipeline failed")
	roster = models.Roster{
		Records:    s.generator.Roster(),
		DataSource: models.DataSourceErrorFallback,
	}
	s.scorer.ScoreRoster(roster.Records)
	s.logger.LogFallback(query.String(), string(roster.DataSource), 0, models.RosterSize, reasonPipelineFail)
	return roster
}

func (s *PredictionService) tryAssemble(ctx context.Context, query models.RaceQuery) (roster models.Roster, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errPipelinePanic, r)
		}
	}()

	roster = s.collect(ctx, query)
	s.scorer.ScoreRoster(roster.Records)
	if err := roster.Validate(); err != nil {
		return models.Roster{}, err
	}
	return roster, nil
}

// collect produces the unscored roster and decides its data source.
func (s *PredictionService) collect(ctx context.Context, query models.RaceQuery) models.Roster {
	race := query.String()

	page, err := s.source.FetchRacePage(ctx, query)
	if err != nil {
		s.logger.LogFallback(race, string(models.DataSourceSample), 0, models.RosterSize,
			reasonFetchFailed+":"+datasource.FetchErrorCode(err))
		return models.Roster{
			Records:    s.generator.Roster(),
			DataSource: models.DataSourceSample,
		}
	}

	result := s.extractor.Extract(page)
	metrics.RecordExtraction(result.Strategy)
	s.logger.LogExtraction(race, result.Strategy, len(result.Records))

	for boat, problems := range s.validator.SanitizeRecords(result.Records) {
		s.logger.WithFields(logrus.Fields{
			"race":     race,
			"boat":     boat,
			"problems": problems,
		}).Warn("Extracted values out of range, defaults applied")
	}

	extracted := min(len(result.Records), models.RosterSize)
	roster := models.Roster{
		Records:        s.generator.Fill(result.Records),
		DataSource:     models.DataSourceReal,
		ExtractedCount: extracted,
		Strategy:       result.Strategy,
	}

	if extracted < models.RosterSize {
		roster.DataSource = models.DataSourceSample
		reason := reasonPartialRows
		if extracted == 0 {
			reason = reasonNoRows
		}
		s.logger.LogFallback(race, string(roster.DataSource), extracted, models.RosterSize-extracted, reason)
	}
	return roster
}
