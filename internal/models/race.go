package models

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	queryValidator     *validator.Validate
	queryValidatorOnce sync.Once
	digitsOnly         = regexp.MustCompile(`^[0-9]+$`)
)

// RaceQuery identifies a single race: a calendar day, a venue and a race number.
type RaceQuery struct {
	Date       string `json:"date" validate:"required,len=8,digits"`
	VenueCode  string `json:"venue_code" validate:"required,min=1,max=2,digits"`
	RaceNumber int    `json:"race_number" validate:"min=1,max=12"`
}

// NewRaceQuery validates raw request input and returns a query with the venue
// code zero-padded to two characters.
func NewRaceQuery(date, venueCode, raceNumber string) (RaceQuery, error) {
	// Atoi alone would accept signs such as "+5".
	if len(raceNumber) > 2 || !digitsOnly.MatchString(raceNumber) {
		return RaceQuery{}, &ValidationError{Field: "race_number", Message: "race number must be an integer between 1 and 12"}
	}
	number, err := strconv.Atoi(raceNumber)
	if err != nil {
		return RaceQuery{}, &ValidationError{Field: "race_number", Message: "race number must be an integer between 1 and 12"}
	}

	q := RaceQuery{Date: date, VenueCode: venueCode, RaceNumber: number}
	if err := q.Validate(); err != nil {
		return RaceQuery{}, err
	}

	q.VenueCode = PadVenueCode(q.VenueCode)
	return q, nil
}

// Validate checks the query shape without touching the network.
func (q RaceQuery) Validate() error {
	err := getQueryValidator().Struct(q)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return fmt.Errorf("validating race query: %w", err)
	}

	switch verrs[0].StructField() {
	case "Date":
		return &ValidationError{Field: "date", Message: "date must be 8 digits in YYYYMMDD format"}
	case "VenueCode":
		return &ValidationError{Field: "venue_code", Message: "venue code must be 1-2 digits (01-24)"}
	default:
		return &ValidationError{Field: "race_number", Message: "race number must be an integer between 1 and 12"}
	}
}

// PadVenueCode left-pads a one digit venue code with a zero.
func PadVenueCode(code string) string {
	if len(code) == 1 {
		return "0" + code
	}
	return code
}

// String returns the query as date/venue/race.
func (q RaceQuery) String() string {
	return fmt.Sprintf("%s/%s/%d", q.Date, q.VenueCode, q.RaceNumber)
}

func getQueryValidator() *validator.Validate {
	queryValidatorOnce.Do(func() {
		queryValidator = validator.New()
		// "numeric" accepts signs and decimal points, so use a strict digit rule
		queryValidator.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return digitsOnly.MatchString(fl.Field().String())
		})
	})
	return queryValidator
}
