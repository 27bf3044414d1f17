package venue

import (
	"sort"

	"github.com/yourusername/boatrace-predictor/internal/models"
)

// UnknownName is returned by Directory.Name for codes not in the directory.
const UnknownName = "unknown"

// Directory is a read-only code -> venue index. It is built once at startup
// and never written afterwards, so lookups need no locking.
type Directory struct {
	byCode map[string]models.Venue
	sorted []models.Venue
}

// NewDirectory indexes the given venues by code. Later duplicates win.
func NewDirectory(venues []models.Venue) *Directory {
	d := &Directory{byCode: make(map[string]models.Venue, len(venues))}
	for _, v := range venues {
		d.byCode[v.Code] = v
	}

	d.sorted = make([]models.Venue, 0, len(d.byCode))
	for _, v := range d.byCode {
		d.sorted = append(d.sorted, v)
	}
	sort.Slice(d.sorted, func(i, j int) bool {
		return d.sorted[i].Code < d.sorted[j].Code
	})
	return d
}

// NewStaticDirectory builds a directory straight from Table.
func NewStaticDirectory() *Directory {
	return NewDirectory(Table)
}

// Lookup returns the venue for a code. One digit codes are zero-padded.
func (d *Directory) Lookup(code string) (models.Venue, bool) {
	v, ok := d.byCode[models.PadVenueCode(code)]
	return v, ok
}

// Name returns the display name for a code, or UnknownName.
func (d *Directory) Name(code string) string {
	if v, ok := d.Lookup(code); ok {
		return v.Name
	}
	return UnknownName
}

// All returns every venue ordered by code. The slice is a copy.
func (d *Directory) All() []models.Venue {
	out := make([]models.Venue, len(d.sorted))
	copy(out, d.sorted)
	return out
}

// Len returns the number of venues.
func (d *Directory) Len() int {
	return len(d.sorted)
}
