package catalog

import (
	"strconv"
	"strings"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

// Filter holds independent, AND-combined film predicates. Zero-value
// fields are inactive; an empty filter matches everything.
type Filter struct {
	// Category matches case-insensitively when non-empty.
	Category string

	// Year matches exactly when set.
	Year *int

	// MinScore matches films with Score >= MinScore when set.
	MinScore *float64

	// InStock keeps only films with stock remaining.
	InStock bool
}

// ParseFilter builds a Filter from raw string inputs, as received from
// the CLI. Empty strings leave the corresponding predicate inactive; an
// unparsable numeric value fails with a ValidationError so the caller
// can leave its displayed set unchanged.
func ParseFilter(category, year, minScore string) (Filter, error) {
	filter := Filter{Category: strings.TrimSpace(category)}

	if trimmed := strings.TrimSpace(year); trimmed != "" {
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return Filter{}, errors.NewValidationError("year", year, "year must be an integer")
		}
		filter.Year = &parsed
	}

	if trimmed := strings.TrimSpace(minScore); trimmed != "" {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Filter{}, errors.NewValidationError("minScore", minScore, "minimum score must be a number")
		}
		filter.MinScore = &parsed
	}

	return filter, nil
}

// Matches reports whether a film satisfies every active predicate.
func (f Filter) Matches(film *Film) bool {
	if f.Category != "" && !strings.EqualFold(film.Category, f.Category) {
		return false
	}
	if f.Year != nil && film.Year != *f.Year {
		return false
	}
	if f.MinScore != nil && film.Score < *f.MinScore {
		return false
	}
	if f.InStock && film.Stock <= 0 {
		return false
	}
	return true
}

// Filter returns the films matching every active predicate, preserving
// the catalog's current relative order. The result is a new slice; the
// canonical order is untouched.
func (c *Catalog) Filter(filter Filter) []*Film {
	matched := make([]*Film, 0, len(c.films))
	for _, film := range c.films {
		if filter.Matches(film) {
			matched = append(matched, film)
		}
	}
	return matched
}
