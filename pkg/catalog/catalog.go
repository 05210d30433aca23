package catalog

import (
	"github.com/filmdesk/filmdesk/pkg/errors"
)

// Catalog is the ordered collection of films. The slice holds the
// canonical display order; the index gives exact-title lookup.
type Catalog struct {
	films []*Film
	index map[string]*Film
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		index: make(map[string]*Film),
	}
}

// NewFromRecords creates a catalog from loaded film records, preserving
// their order. Nil rating maps are backfilled to empty and scores are
// left as persisted.
func NewFromRecords(records []Film) *Catalog {
	cat := New()
	for i := range records {
		film := records[i]
		if film.RatingMap == nil {
			film.RatingMap = make(map[string]float64)
		}
		cat.append(&film)
	}
	return cat
}

// append adds a film without validation. Later entries win the index
// slot on duplicate titles, matching last-write semantics on load.
func (c *Catalog) append(film *Film) {
	c.films = append(c.films, film)
	c.index[film.Title] = film
}

// Add validates and appends a new film to the catalog.
func (c *Catalog) Add(film Film) error {
	if err := film.Validate(); err != nil {
		return err
	}
	if _, exists := c.index[film.Title]; exists {
		return errors.NewValidationError("title", film.Title, "film already exists in catalog")
	}
	if film.RatingMap == nil {
		film.RatingMap = make(map[string]float64)
	}
	film.RecomputeScore()
	c.append(&film)
	return nil
}

// Get returns a film by exact title match.
func (c *Catalog) Get(title string) (*Film, error) {
	film, ok := c.index[title]
	if !ok {
		return nil, errors.NewNotFoundError("film", title)
	}
	return film, nil
}

// Rate records a user's rating for a film and recomputes its score.
// The rating must be within [0, 10] and the film must exist.
func (c *Catalog) Rate(title, username string, rating float64) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	film, err := c.Get(title)
	if err != nil {
		return err
	}
	film.SetRating(username, rating)
	return nil
}

// List returns the films in canonical order. The slice is a copy; the
// films are shared references.
func (c *Catalog) List() []*Film {
	films := make([]*Film, len(c.films))
	copy(films, c.films)
	return films
}

// Records returns a value snapshot of the catalog in canonical order,
// suitable for persistence.
func (c *Catalog) Records() []Film {
	records := make([]Film, 0, len(c.films))
	for _, film := range c.films {
		records = append(records, *film)
	}
	return records
}

// Replace swaps the catalog contents wholesale, preserving the order of
// the given records. Used by catalog import.
func (c *Catalog) Replace(records []Film) {
	c.films = nil
	c.index = make(map[string]*Film, len(records))
	for i := range records {
		film := records[i]
		if film.RatingMap == nil {
			film.RatingMap = make(map[string]float64)
		}
		c.append(&film)
	}
}

// Len returns the number of films in the catalog.
func (c *Catalog) Len() int {
	return len(c.films)
}
