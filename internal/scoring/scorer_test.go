package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

func newTestScorer(t *testing.T, policy Policy) *Scorer {
	t.Helper()
	s, err := NewScorer(policy)
	require.NoError(t, err)
	return s
}

func testRoster() []models.CompetitorRecord {
	tiers := []models.ClassTier{models.ClassA1, models.ClassB1, models.ClassA2, models.ClassB2, models.ClassA1, models.ClassB1}
	records := make([]models.CompetitorRecord, models.RosterSize)
	for i := range records {
		records[i] = models.CompetitorRecord{
			BoatNumber:  i + 1,
			ClassTier:   tiers[i],
			WinRate:     7.2 - float64(i)*0.7,
			StartTiming: 0.08 + float64(i)*0.03,
		}
	}
	return records
}

func TestNamedPoliciesAreValid(t *testing.T) {
	for _, name := range PolicyNames() {
		policy, err := PolicyByName(name)
		require.NoError(t, err)
		assert.NoError(t, policy.Validate(), name)
	}

	_, err := PolicyByName("aggressive")
	assert.Error(t, err)
}

func TestScoreTopCompetitorHitsCeiling(t *testing.T) {
	tests := []struct {
		policy  Policy
		ceiling float64
	}{
		{NormalizedPolicy(), 95},
		{BoundedPolicy(), 38},
	}

	for _, tt := range tests {
		t.Run(tt.policy.Name, func(t *testing.T) {
			s := newTestScorer(t, tt.policy)
			assert.Equal(t, tt.ceiling, s.Score(6.50, models.ClassA1, 0.09, 1))
		})
	}
}

func TestScoreWeakCompetitorHitsFloor(t *testing.T) {
	s := newTestScorer(t, BoundedPolicy())
	assert.Equal(t, 8.0, s.Score(0, models.ClassB2, 0.30, 6))

	s = newTestScorer(t, NormalizedPolicy())
	assert.Equal(t, 5.0, s.Score(0, models.ClassB2, 0.30, 6))
}

func TestScoreComponents(t *testing.T) {
	s := newTestScorer(t, NormalizedPolicy())

	// 4.00*10 + B1 5 + start<0.20 3 + lane3 6
	assert.Equal(t, 54.0, s.Score(4.00, models.ClassB1, 0.17, 3))
	// unknown tier earns nothing, slow start costs 3
	assert.Equal(t, 43.0, s.Score(4.00, models.ClassTier("S"), 0.25, 3))
}

func TestScoreStaysInRange(t *testing.T) {
	inputs := []float64{math.NaN(), math.Inf(1), math.Inf(-1), -100, -1, 0, 0.05, 3.3, 9.99, 100, 1e12}

	for _, policy := range []Policy{NormalizedPolicy(), BoundedPolicy()} {
		s := newTestScorer(t, policy)
		for _, winRate := range inputs {
			for _, timing := range inputs {
				for boat := 0; boat <= 7; boat++ {
					score := s.Score(winRate, models.ClassA2, timing, boat)
					assert.GreaterOrEqual(t, score, policy.Min)
					assert.LessOrEqual(t, score, policy.Max)
				}
			}
		}
	}
}

func TestScoreFaultsReturnNeutral(t *testing.T) {
	s := newTestScorer(t, BoundedPolicy())

	assert.Equal(t, 23.0, s.Score(math.NaN(), models.ClassA1, 0.1, 1))
	assert.Equal(t, 23.0, s.Score(5, models.ClassA1, math.Inf(1), 1))
	assert.Equal(t, 23.0, s.Score(5, models.ClassA1, 0.1, 0))
	assert.Equal(t, 23.0, s.Score(5, models.ClassA1, 0.1, 7))
}

func TestScoreIsDeterministic(t *testing.T) {
	s := newTestScorer(t, NormalizedPolicy())
	first := s.Score(5.43, models.ClassA2, 0.14, 2)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, s.Score(5.43, models.ClassA2, 0.14, 2))
	}
}

func TestLaneBonusIsNonIncreasing(t *testing.T) {
	for _, policy := range []Policy{NormalizedPolicy(), BoundedPolicy()} {
		s := newTestScorer(t, policy)
		prev := math.Inf(1)
		for boat := 1; boat <= models.RosterSize; boat++ {
			score := s.Score(3.1, models.ClassB1, 0.16, boat)
			assert.LessOrEqual(t, score, prev, "%s boat %d", policy.Name, boat)
			prev = score
		}
		assert.GreaterOrEqual(t, s.Score(3.1, models.ClassB1, 0.16, 1), s.Score(3.1, models.ClassB1, 0.16, 6))
	}
}

func TestStartBonusIsMonotonic(t *testing.T) {
	s := newTestScorer(t, NormalizedPolicy())
	fast := s.Score(2, models.ClassB1, 0.05, 4)
	good := s.Score(2, models.ClassB1, 0.12, 4)
	fair := s.Score(2, models.ClassB1, 0.18, 4)
	slow := s.Score(2, models.ClassB1, 0.30, 4)

	assert.Greater(t, fast, good)
	assert.Greater(t, good, fair)
	assert.Greater(t, fair, slow)
}

func TestScoreRosterNormalizes(t *testing.T) {
	s := newTestScorer(t, NormalizedPolicy())
	records := testRoster()
	s.ScoreRoster(records)

	var sum float64
	for _, rec := range records {
		assert.GreaterOrEqual(t, rec.PredictedProbability, 0.0)
		sum += rec.PredictedProbability
	}
	assert.InDelta(t, 100.0, sum, 0.05)
	assert.Greater(t, records[0].PredictedProbability, records[5].PredictedProbability)
}

func TestScoreRosterNormalizedShareMayFallBelowMin(t *testing.T) {
	policy := NormalizedPolicy()
	s := newTestScorer(t, policy)

	records := make([]models.CompetitorRecord, models.RosterSize)
	for i := range records {
		records[i] = models.CompetitorRecord{BoatNumber: i + 1, ClassTier: models.ClassA1, WinRate: 9.0, StartTiming: 0.05}
	}
	records[5] = models.CompetitorRecord{BoatNumber: 6, ClassTier: models.ClassB2, WinRate: 0, StartTiming: 0.30}

	// The clamp holds per record before the roster is rescaled.
	for _, rec := range records {
		score := s.Score(rec.WinRate, rec.ClassTier, rec.StartTiming, rec.BoatNumber)
		assert.GreaterOrEqual(t, score, policy.Min)
		assert.LessOrEqual(t, score, policy.Max)
	}

	s.ScoreRoster(records)

	var sum float64
	for _, rec := range records[:5] {
		assert.InDelta(t, 19.79, rec.PredictedProbability, 0.001)
		sum += rec.PredictedProbability
	}
	weak := records[5].PredictedProbability
	assert.InDelta(t, 1.04, weak, 0.001)
	assert.Less(t, weak, policy.Min)
	assert.GreaterOrEqual(t, weak, 0.0)
	assert.InDelta(t, 100.0, sum+weak, 0.05)
}

func TestScoreRosterNormalizesNeutralScores(t *testing.T) {
	s := newTestScorer(t, NormalizedPolicy())
	records := testRoster()
	for i := range records {
		records[i].WinRate = math.NaN()
	}
	s.ScoreRoster(records)

	for _, rec := range records {
		assert.InDelta(t, 16.67, rec.PredictedProbability, 0.001)
	}
}

func TestScoreRosterBoundedLeavesScoresIndependent(t *testing.T) {
	s := newTestScorer(t, BoundedPolicy())
	records := testRoster()
	s.ScoreRoster(records)

	for _, rec := range records {
		expected := s.Score(rec.WinRate, rec.ClassTier, rec.StartTiming, rec.BoatNumber)
		assert.Equal(t, expected, rec.PredictedProbability)
		assert.GreaterOrEqual(t, rec.PredictedProbability, 8.0)
		assert.LessOrEqual(t, rec.PredictedProbability, 38.0)
	}
}

func TestPolicyValidateRejectsIncreasingLaneBonus(t *testing.T) {
	policy := BoundedPolicy()
	policy.LaneBonus[5] = 10
	_, err := NewScorer(policy)
	assert.Error(t, err)
}

func TestPolicyValidateRejectsUnorderedClassBonus(t *testing.T) {
	policy := NormalizedPolicy()
	policy.ClassBonus[models.ClassB2] = 20
	assert.Error(t, policy.Validate())
}
