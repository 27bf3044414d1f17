package models

import (
	"time"

	"github.com/google/uuid"
)

// RacePrediction is the pipeline's output for one race query.
type RacePrediction struct {
	ID                 uuid.UUID          `json:"prediction_id"`
	Date               string             `json:"date"`
	VenueCode          string             `json:"venue_code"`
	VenueName          string             `json:"venue_name"`
	RaceNumber         int                `json:"race_number"`
	Roster             []CompetitorRecord `json:"roster"`
	DataSource         DataSource         `json:"data_source"`
	ExtractedCount     int                `json:"extracted_count"`
	ExtractionStrategy string             `json:"extraction_strategy,omitempty"`
	ScoringPolicy      string             `json:"scoring_policy"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// ProbabilitySum adds up the predicted probabilities of all lanes.
func (p *RacePrediction) ProbabilitySum() float64 {
	var sum float64
	for _, rec := range p.Roster {
		sum += rec.PredictedProbability
	}
	return sum
}
