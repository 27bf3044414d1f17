// Package fallback synthesizes race rosters when the race page cannot be
// fetched or only part of it could be extracted.
package fallback

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

var (
	classRotation = [models.RosterSize]models.ClassTier{
		models.ClassA1, models.ClassA1,
		models.ClassA2, models.ClassA2,
		models.ClassB1, models.ClassB1,
	}
	branchRotation   = [2]string{"東京", "大阪"}
	hometownRotation = [2]string{"東京都", "大阪府"}
)

// Generator builds deterministic synthetic competitors. Probabilities are left
// at zero so that the regular scorer handles synthetic and real lanes alike.
type Generator struct{}

// NewGenerator creates a fallback generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Record returns the synthetic competitor for one lane (1..6).
func (g *Generator) Record(boatNumber int) models.CompetitorRecord {
	i := boatNumber
	return models.CompetitorRecord{
		BoatNumber:         boatNumber,
		RegistrationNumber: fmt.Sprintf("123%02d", i),
		Name:               fmt.Sprintf("選手%d", i),
		ClassTier:          classRotation[(i-1)%models.RosterSize],
		Branch:             branchRotation[(i+1)%2],
		Hometown:           hometownRotation[(i+1)%2],
		Age:                strconv.Itoa(25 + i),
		WinRate:            round2(5.5 - float64(i)*0.5),
		StartTiming:        round2(0.12 + float64(i)*0.01),
		Synthetic:          true,
	}
}

// Roster returns six synthetic competitors numbered 1..6.
func (g *Generator) Roster() []models.CompetitorRecord {
	records := make([]models.CompetitorRecord, models.RosterSize)
	for i := range records {
		records[i] = g.Record(i + 1)
	}
	return records
}

// Fill keeps up to six extracted records and pads the remaining lanes with
// synthetic ones. Boat numbers are reassigned from position.
func (g *Generator) Fill(extracted []models.CompetitorRecord) []models.CompetitorRecord {
	records := make([]models.CompetitorRecord, models.RosterSize)
	for i := range records {
		if i < len(extracted) {
			records[i] = extracted[i]
			records[i].BoatNumber = i + 1
			records[i].Synthetic = false
			continue
		}
		records[i] = g.Record(i + 1)
	}
	return records
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
