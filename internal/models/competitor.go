package models

import "strings"

// ClassTier is a racer's licensed grade. A1 is the strongest.
type ClassTier string

const (
	ClassA1 ClassTier = "A1"
	ClassA2 ClassTier = "A2"
	ClassB1 ClassTier = "B1"
	ClassB2 ClassTier = "B2"

	// DefaultClassTier is used whenever a tier cannot be read from the page.
	DefaultClassTier = ClassB1
)

// ParseClassTier normalizes a tier token. Unknown tokens map to DefaultClassTier.
func ParseClassTier(s string) ClassTier {
	tier, ok := LookupClassTier(s)
	if !ok {
		return DefaultClassTier
	}
	return tier
}

// LookupClassTier reports whether s names a known tier.
func LookupClassTier(s string) (ClassTier, bool) {
	switch ClassTier(strings.ToUpper(strings.TrimSpace(s))) {
	case ClassA1:
		return ClassA1, true
	case ClassA2:
		return ClassA2, true
	case ClassB1:
		return ClassB1, true
	case ClassB2:
		return ClassB2, true
	default:
		return "", false
	}
}

// CompetitorRecord is one lane of a race roster. BoatNumber is assigned from
// row order and is the only field guaranteed to be accurate; everything else
// is best-effort extraction or synthetic fill.
type CompetitorRecord struct {
	BoatNumber           int       `json:"boat_number" validate:"min=1,max=6"`
	RegistrationNumber   string    `json:"registration_number"`
	Name                 string    `json:"racer_name"`
	ClassTier            ClassTier `json:"racer_class"`
	Branch               string    `json:"branch"`
	Hometown             string    `json:"hometown"`
	Age                  string    `json:"age"`
	WinRate              float64   `json:"win_rate"`
	StartTiming          float64   `json:"start_timing"`
	PredictedProbability float64   `json:"predicted_probability"`
	Synthetic            bool      `json:"synthetic"`
}
