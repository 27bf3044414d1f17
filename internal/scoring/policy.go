// Package scoring turns per-competitor signals into a bounded win estimate.
package scoring

import (
	"fmt"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// Policy names
const (
	PolicyNormalized = "normalized"
	PolicyBounded    = "bounded"
)

// StartTier awards Bonus to start timings strictly below Below.
type StartTier struct {
	Below float64
	Bonus float64
}

// Policy holds every constant the scorer uses.
type Policy struct {
	Name              string
	WinRateWeight     float64
	ClassBonus        map[models.ClassTier]float64
	UnknownClassBonus float64
	// StartTiers must be sorted by ascending Below.
	StartTiers     []StartTier
	SlowStartBonus float64
	// LaneBonus is indexed by boat number - 1.
	LaneBonus [models.RosterSize]float64
	Min       float64
	Max       float64
	Neutral   float64
	Normalize bool
}

// NormalizedPolicy clamps each lane to [5,95] and rescales the roster so the
// six estimates sum to 100.
func NormalizedPolicy() Policy {
	return Policy{
		Name:          PolicyNormalized,
		WinRateWeight: 10,
		ClassBonus: map[models.ClassTier]float64{
			models.ClassA1: 12,
			models.ClassA2: 8,
			models.ClassB1: 5,
			models.ClassB2: 2,
		},
		UnknownClassBonus: 0,
		StartTiers: []StartTier{
			{Below: 0.10, Bonus: 10},
			{Below: 0.15, Bonus: 6},
			{Below: 0.20, Bonus: 3},
		},
		SlowStartBonus: -3,
		LaneBonus:      [models.RosterSize]float64{15, 9, 6, 4, 2, 0},
		Min:            5,
		Max:            95,
		Neutral:        50,
		Normalize:      true,
	}
}

// BoundedPolicy scores each lane independently inside [8,38].
func BoundedPolicy() Policy {
	return Policy{
		Name:          PolicyBounded,
		WinRateWeight: 4,
		ClassBonus: map[models.ClassTier]float64{
			models.ClassA1: 6,
			models.ClassA2: 4,
			models.ClassB1: 2,
			models.ClassB2: 1,
		},
		UnknownClassBonus: 0,
		StartTiers: []StartTier{
			{Below: 0.10, Bonus: 4},
			{Below: 0.15, Bonus: 2},
			{Below: 0.20, Bonus: 1},
		},
		SlowStartBonus: -1,
		LaneBonus:      [models.RosterSize]float64{6, 4, 3, 2, 1, 0},
		Min:            8,
		Max:            38,
		Neutral:        23,
		Normalize:      false,
	}
}

// PolicyByName returns one of the named policies.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", PolicyNormalized:
		return NormalizedPolicy(), nil
	case PolicyBounded:
		return BoundedPolicy(), nil
	default:
		return Policy{}, fmt.Errorf("unknown scoring policy %q", name)
	}
}

// PolicyNames lists the accepted policy names.
func PolicyNames() []string {
	return []string{PolicyNormalized, PolicyBounded}
}

// Validate checks the ordering guarantees the scorer relies on.
func (p Policy) Validate() error {
	if p.Min > p.Max {
		return fmt.Errorf("policy %s: min %.2f exceeds max %.2f", p.Name, p.Min, p.Max)
	}
	if p.Neutral < p.Min || p.Neutral > p.Max {
		return fmt.Errorf("policy %s: neutral score %.2f outside [%.2f,%.2f]", p.Name, p.Neutral, p.Min, p.Max)
	}
	for i := 1; i < len(p.LaneBonus); i++ {
		if p.LaneBonus[i] > p.LaneBonus[i-1] {
			return fmt.Errorf("policy %s: lane bonus must not increase with boat number", p.Name)
		}
	}
	prev := p.SlowStartBonus
	for i := len(p.StartTiers) - 1; i >= 0; i-- {
		tier := p.StartTiers[i]
		if tier.Bonus <= prev {
			return fmt.Errorf("policy %s: faster start tiers must earn strictly higher bonuses", p.Name)
		}
		if i > 0 && p.StartTiers[i-1].Below >= tier.Below {
			return fmt.Errorf("policy %s: start tiers must be sorted by threshold", p.Name)
		}
		prev = tier.Bonus
	}
	order := []models.ClassTier{models.ClassA1, models.ClassA2, models.ClassB1, models.ClassB2}
	for i := 1; i < len(order); i++ {
		if p.ClassBonus[order[i]] >= p.ClassBonus[order[i-1]] {
			return fmt.Errorf("policy %s: class bonus must be strictly ordered A1 > A2 > B1 > B2", p.Name)
		}
	}
	if p.UnknownClassBonus >= p.ClassBonus[models.ClassB2] {
		return fmt.Errorf("policy %s: unknown class bonus must be below B2", p.Name)
	}
	return nil
}
