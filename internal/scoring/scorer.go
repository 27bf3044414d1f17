package scoring

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// Scorer computes predicted probabilities under a fixed Policy. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	policy Policy
}

// NewScorer creates a scorer for the given policy.
func NewScorer(policy Policy) (*Scorer, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{policy: policy}, nil
}

// Policy returns the policy the scorer was built with.
func (s *Scorer) Policy() Policy {
	return s.policy
}

// Score returns the clamped score for one lane. Non-finite inputs and boat
// numbers outside 1..6 yield the policy's neutral score.
func (s *Scorer) Score(winRate float64, tier models.ClassTier, startTiming float64, boatNumber int) float64 {
	if !isFinite(winRate) || !isFinite(startTiming) {
		return s.policy.Neutral
	}
	if boatNumber < 1 || boatNumber > models.RosterSize {
		return s.policy.Neutral
	}

	score := winRate*s.policy.WinRateWeight +
		s.classBonus(tier) +
		s.startBonus(startTiming) +
		s.policy.LaneBonus[boatNumber-1]

	if !isFinite(score) {
		return s.policy.Neutral
	}

	return round2(clamp(score, s.policy.Min, s.policy.Max))
}

// ScoreRoster fills PredictedProbability for every record. When the policy
// normalizes, the clamped scores are rescaled to sum to 100.
func (s *Scorer) ScoreRoster(records []models.CompetitorRecord) {
	var sum float64
	for i := range records {
		rec := &records[i]
		rec.PredictedProbability = s.Score(rec.WinRate, rec.ClassTier, rec.StartTiming, rec.BoatNumber)
		sum += rec.PredictedProbability
	}

	if !s.policy.Normalize || sum <= 0 {
		return
	}

	for i := range records {
		records[i].PredictedProbability = round2(records[i].PredictedProbability * 100 / sum)
	}
}

func (s *Scorer) classBonus(tier models.ClassTier) float64 {
	if bonus, ok := s.policy.ClassBonus[tier]; ok {
		return bonus
	}
	return s.policy.UnknownClassBonus
}

func (s *Scorer) startBonus(timing float64) float64 {
	for _, tier := range s.policy.StartTiers {
		if timing < tier.Below {
			return tier.Bonus
		}
	}
	return s.policy.SlowStartBonus
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
