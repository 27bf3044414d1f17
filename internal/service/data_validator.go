package service

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/yourusername/boatrace-predictor/internal/extractor"
	"github.com/yourusername/boatrace-predictor/internal/models"
)

// Plausible ranges for extracted values
const (
	maxWinRate = 10.0
	minAge     = 15
	maxAge     = 80
)

var registrationFormat = regexp.MustCompile(`^\d{4}$`)

// DataValidator checks extracted competitor records for values that cannot
// be right and resets them to the extractor defaults
type DataValidator struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// SanitizeRecord repairs rec in place and returns one message per repaired field
func (v *DataValidator) SanitizeRecord(rec *models.CompetitorRecord) []string {
	var problems []string

	if rec.WinRate < 0 || rec.WinRate > maxWinRate {
		problems = append(problems, fmt.Sprintf("win_rate out of range (0-%.0f), got %.2f", maxWinRate, rec.WinRate))
		rec.WinRate = extractor.DefaultWinRate
	}

	if rec.StartTiming < 0 || rec.StartTiming >= 1 {
		problems = append(problems, fmt.Sprintf("start_timing out of range (0-1), got %.2f", rec.StartTiming))
		rec.StartTiming = extractor.DefaultStartTiming
	}

	if rec.Age != "" && !v.IsValidAge(rec.Age) {
		problems = append(problems, fmt.Sprintf("age out of range (%d-%d), got %s", minAge, maxAge, rec.Age))
		rec.Age = ""
	}

	if rec.RegistrationNumber != "" && !registrationFormat.MatchString(rec.RegistrationNumber) {
		problems = append(problems, fmt.Sprintf("registration_number must be 4 digits, got %s", rec.RegistrationNumber))
		rec.RegistrationNumber = ""
	}

	return problems
}

// SanitizeRecords repairs every record and returns the problems keyed by boat number
func (v *DataValidator) SanitizeRecords(records []models.CompetitorRecord) map[int][]string {
	found := make(map[int][]string)
	for i := range records {
		if problems := v.SanitizeRecord(&records[i]); len(problems) > 0 {
			found[records[i].BoatNumber] = problems
		}
	}
	return found
}

// IsValidAge checks that age is a plausible racer age
func (v *DataValidator) IsValidAge(age string) bool {
	n, err := strconv.Atoi(age)
	return err == nil && n >= minAge && n <= maxAge
}
