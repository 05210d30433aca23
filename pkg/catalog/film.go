// Package catalog provides the in-memory film catalog for filmdesk.
// The catalog owns the canonical ordering of films and supports add,
// rating, filtering, and sorting operations.
//
// The catalog is process-local mutable state with a single-writer
// contract: callers must serialize mutating operations. It performs no
// internal locking.
package catalog

import (
	"strings"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

// Rating bounds for user-submitted ratings.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Film is a single catalog entry. Title is the unique, case-sensitive key.
// Score is derived: the arithmetic mean of RatingMap values, 0.0 when the
// film is unrated.
type Film struct {
	Title     string             `json:"title"`
	Category  string             `json:"category"`
	Year      int                `json:"year"`
	Score     float64            `json:"score"`
	RatingMap map[string]float64 `json:"ratingMap"`
	Stock     int                `json:"stock"`
	UnitPrice float64            `json:"unitPrice"`
}

// Validate checks the film's required fields and numeric ranges.
func (f *Film) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errors.NewValidationError("title", f.Title, "title must not be empty")
	}
	if strings.TrimSpace(f.Category) == "" {
		return errors.NewValidationError("category", f.Category, "category must not be empty")
	}
	if f.Stock < 0 {
		return errors.NewValidationError("stock", f.Stock, "stock must not be negative")
	}
	if f.UnitPrice < 0 {
		return errors.NewValidationError("unitPrice", f.UnitPrice, "unit price must not be negative")
	}
	return nil
}

// SetRating upserts a user's rating and recomputes the derived score.
func (f *Film) SetRating(username string, rating float64) {
	if f.RatingMap == nil {
		f.RatingMap = make(map[string]float64)
	}
	f.RatingMap[username] = rating
	f.RecomputeScore()
}

// RecomputeScore recalculates Score as the mean of all ratings.
// An empty rating map yields a score of 0.0.
func (f *Film) RecomputeScore() {
	if len(f.RatingMap) == 0 {
		f.Score = 0.0
		return
	}
	var sum float64
	for _, rating := range f.RatingMap {
		sum += rating
	}
	f.Score = sum / float64(len(f.RatingMap))
}

// ValidateRating checks that a rating falls within the allowed range.
func ValidateRating(rating float64) error {
	if rating < MinRating || rating > MaxRating {
		return errors.NewValidationError("rating", rating, "rating must be between 0 and 10")
	}
	return nil
}
