package models

import "fmt"

// RosterSize is the number of boats in every race.
const RosterSize = 6

// DataSource records where a roster came from.
type DataSource string

const (
	// DataSourceReal means every lane was extracted from the race page.
	DataSourceReal DataSource = "real"
	// DataSourceSample means at least one lane was synthesized, either because
	// the page could not be fetched or because extraction came up short.
	DataSourceSample DataSource = "sample"
	// DataSourceErrorFallback means the pipeline failed internally and the
	// whole roster was replaced with synthetic data.
	DataSourceErrorFallback DataSource = "errorFallback"
)

// Roster is the ordered set of six competitors for one race.
type Roster struct {
	Records        []CompetitorRecord
	DataSource     DataSource
	ExtractedCount int
	Strategy       string
}

// Validate checks the lane invariants: exactly six records numbered 1..6 in order.
func (r *Roster) Validate() error {
	if len(r.Records) != RosterSize {
		return fmt.Errorf("%w: expected %d records, got %d", ErrInvalidRoster, RosterSize, len(r.Records))
	}
	for i, rec := range r.Records {
		if rec.BoatNumber != i+1 {
			return fmt.Errorf("%w: record %d has boat number %d", ErrInvalidRoster, i, rec.BoatNumber)
		}
	}
	switch r.DataSource {
	case DataSourceReal, DataSourceSample, DataSourceErrorFallback:
	default:
		return fmt.Errorf("%w: unknown data source %q", ErrInvalidRoster, r.DataSource)
	}
	return nil
}

// SyntheticCount returns how many lanes were filled with generated data.
func (r *Roster) SyntheticCount() int {
	n := 0
	for _, rec := range r.Records {
		if rec.Synthetic {
			n++
		}
	}
	return n
}
