package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// ErrUnparseable is returned by ExtractStrict when the markup cannot be read
// into a document at all.
var ErrUnparseable = errors.New("markup could not be parsed")

// Result is the output of one extraction.
type Result struct {
	Records []models.CompetitorRecord
	// Strategy names the strategy that matched, or is empty.
	Strategy string
}

// Extractor runs strategies in priority order.
type Extractor struct {
	strategies []Strategy
}

// New creates an extractor. With no arguments it uses DefaultStrategies.
func New(strategies ...Strategy) *Extractor {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Extractor{strategies: strategies}
}

// Strategies returns the strategy names in the order they are tried.
func (e *Extractor) Strategies() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name
	}
	return names
}

// Extract parses markup into at most six records. It never fails; markup
// that cannot be parsed yields an empty result.
func (e *Extractor) Extract(markup []byte) Result {
	result, err := e.ExtractStrict(markup)
	if err != nil {
		return Result{}
	}
	return result
}

// ExtractStrict is Extract but reports documents that could not be parsed.
func (e *Extractor) ExtractStrict(markup []byte) (Result, error) {
	return e.ExtractReader(bytes.NewReader(markup))
}

// ExtractReader parses markup from r.
func (e *Extractor) ExtractReader(r io.Reader) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return e.ExtractDocument(doc), nil
}

// ExtractDocument runs the strategies against an already parsed document.
func (e *Extractor) ExtractDocument(doc *goquery.Document) Result {
	for _, s := range e.strategies {
		rows := usableRows(s.Find(doc), s.MinCells)
		if len(rows) == 0 {
			continue
		}
		if len(rows) > models.RosterSize {
			rows = rows[:models.RosterSize]
		}

		records := make([]models.CompetitorRecord, len(rows))
		for i, r := range rows {
			records[i] = buildRecord(i+1, r)
		}
		return Result{Records: records, Strategy: s.Name}
	}
	return Result{}
}

// usableRows drops rows with fewer than minCells cells.
func usableRows(rows []Row, minCells int) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		if len(r.Cells) < minCells {
			continue
		}
		out = append(out, r)
	}
	return out
}
