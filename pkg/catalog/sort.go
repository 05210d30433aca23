package catalog

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

// SortKey selects the field films are ordered by.
type SortKey string

// Supported sort keys.
const (
	SortByTitle SortKey = "title" // ascending, case-insensitive
	SortByYear  SortKey = "year"  // ascending
	SortByScore SortKey = "score" // descending
)

// ParseSortKey validates a raw sort key string.
func ParseSortKey(key string) (SortKey, error) {
	switch SortKey(key) {
	case SortByTitle, SortByYear, SortByScore:
		return SortKey(key), nil
	default:
		return "", errors.NewValidationError("sort", key, "sort key must be one of title, year, score")
	}
}

// titleCollator orders titles case-insensitively, locale-neutral.
var titleCollator = collate.New(language.Und, collate.IgnoreCase)

// Sort reorders the canonical in-memory film order by the given key.
// Title sorts ascending case-insensitively, year ascending, score
// descending. The sort is stable so equal elements keep their relative
// order.
func (c *Catalog) Sort(key SortKey) error {
	switch key {
	case SortByTitle:
		sort.SliceStable(c.films, func(i, j int) bool {
			return titleCollator.CompareString(c.films[i].Title, c.films[j].Title) < 0
		})
	case SortByYear:
		sort.SliceStable(c.films, func(i, j int) bool {
			return c.films[i].Year < c.films[j].Year
		})
	case SortByScore:
		sort.SliceStable(c.films, func(i, j int) bool {
			return c.films[i].Score > c.films[j].Score
		})
	default:
		return errors.NewValidationError("sort", string(key), "sort key must be one of title, year, score")
	}
	return nil
}
