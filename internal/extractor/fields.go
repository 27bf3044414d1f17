package extractor

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// Defaults used when a field cannot be read.
const (
	DefaultWinRate     = 4.00
	DefaultStartTiming = 0.18
)

var (
	registrationPattern = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)
	classPattern        = regexp.MustCompile(`(?:^|[^A-Za-z0-9])(A1|A2|B1|B2)(?:[^A-Za-z0-9]|$)`)
	originPattern       = regexp.MustCompile(`([^\s/\d]+)/([^\s/\d]+)\s*(\d{2})歳`)
	agePattern          = regexp.MustCompile(`(?:^|\D)(\d{2})(?:\D|$)`)
	numberPattern       = regexp.MustCompile(`\d+(?:\.\d+)?`)
	ratePattern         = regexp.MustCompile(`^\d\.\d{2}$`)
	digitsOnly          = regexp.MustCompile(`^[\d.\s/]*$`)
)

// buildRecord turns a row into a record for the given lane. Every field is
// read independently; a miss leaves that field at its default.
func buildRecord(boat int, r Row) models.CompetitorRecord {
	rec := models.CompetitorRecord{
		BoatNumber:  boat,
		ClassTier:   models.DefaultClassTier,
		WinRate:     DefaultWinRate,
		StartTiming: DefaultStartTiming,
	}

	if v, ok := registrationField(r); ok {
		rec.RegistrationNumber = v
	}
	if v, ok := nameField(r); ok {
		rec.Name = v
	}
	if v, ok := classField(r); ok {
		rec.ClassTier = v
	}
	if branch, hometown, age, ok := originFields(r); ok {
		rec.Branch, rec.Hometown, rec.Age = branch, hometown, age
	}

	rates := rateTokens(r)
	if v, ok := winRateField(rates); ok {
		rec.WinRate = v
	}
	if v, ok := startTimingField(rates); ok {
		rec.StartTiming = v
	}
	return rec
}

func cell(r Row, i int) (string, bool) {
	if !r.Columnar || i >= len(r.Cells) || r.Cells[i] == "" {
		return "", false
	}
	return r.Cells[i], true
}

func registrationField(r Row) (string, bool) {
	if c, ok := cell(r, 0); ok {
		if m := registrationPattern.FindStringSubmatch(c); m != nil {
			return m[1], true
		}
	}
	if m := registrationPattern.FindStringSubmatch(r.Text); m != nil {
		return m[1], true
	}
	return "", false
}

func nameField(r Row) (string, bool) {
	if r.NameHint != "" {
		return r.NameHint, true
	}
	if c, ok := cell(r, 1); ok {
		return parseName(c)
	}
	return "", false
}

// parseName rejects values that are clearly not a person's name.
func parseName(s string) (string, bool) {
	if s == "" || digitsOnly.MatchString(s) {
		return "", false
	}
	if _, ok := models.LookupClassTier(s); ok {
		return "", false
	}
	return s, true
}

func classField(r Row) (models.ClassTier, bool) {
	if c, ok := cell(r, 2); ok {
		if tier, ok := models.LookupClassTier(strings.TrimSpace(c)); ok {
			return tier, true
		}
	}
	if m := classPattern.FindStringSubmatch(r.Text); m != nil {
		return models.LookupClassTier(m[1])
	}
	return "", false
}

func originFields(r Row) (branch, hometown, age string, ok bool) {
	if m := originPattern.FindStringSubmatch(r.Text); m != nil {
		return m[1], m[2], m[3], true
	}
	branch, _ = cell(r, 3)
	hometown, _ = cell(r, 4)
	if c, found := cell(r, 5); found {
		if m := agePattern.FindStringSubmatch(c); m != nil {
			age = m[1]
		}
	}
	return branch, hometown, age, branch != "" || hometown != "" || age != ""
}

// rateTokens returns the two-decimal numbers of a row in document order. For
// columnar rows only the cells after the profile columns are searched.
func rateTokens(r Row) []decimal.Decimal {
	text := r.Text
	if r.Columnar {
		if len(r.Cells) <= 6 {
			return nil
		}
		text = strings.Join(r.Cells[6:], " ")
	}

	var out []decimal.Decimal
	for _, tok := range numberPattern.FindAllString(text, -1) {
		if !ratePattern.MatchString(tok) {
			continue
		}
		d, err := decimal.NewFromString(tok)
		if err != nil {
			continue
		}
		out = append(out, d.Round(2))
	}
	return out
}

var one = decimal.NewFromInt(1)

// winRateField picks the first rate of at least 1.00.
func winRateField(rates []decimal.Decimal) (float64, bool) {
	for _, d := range rates {
		if d.GreaterThanOrEqual(one) {
			return d.InexactFloat64(), true
		}
	}
	return 0, false
}

// startTimingField picks the first rate below 1.00.
func startTimingField(rates []decimal.Decimal) (float64, bool) {
	for _, d := range rates {
		if d.LessThan(one) {
			return d.InexactFloat64(), true
		}
	}
	return 0, false
}
