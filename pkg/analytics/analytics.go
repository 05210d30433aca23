// Package analytics derives read-only aggregate views from catalog and
// ledger snapshots. Every function is pure: it never mutates its inputs,
// is deterministic for the same inputs, and tolerates empty collections
// by returning empty mappings.
package analytics

import (
	"github.com/filmdesk/filmdesk/pkg/catalog"
	"github.com/filmdesk/filmdesk/pkg/sales"
)

// UnknownCategory is the sentinel used when a sold title no longer
// resolves to a catalog entry.
const UnknownCategory = "Unknown"

// TitleScore pairs a film title with its score.
type TitleScore struct {
	Title string
	Score float64
}

// BestByCategory returns, for each category, the title/score pair with
// the maximum score. Ties resolve to the first film seen during the
// scan, keeping the result stable across runs.
func BestByCategory(films []*catalog.Film) map[string]TitleScore {
	best := make(map[string]TitleScore)
	for _, film := range films {
		current, ok := best[film.Category]
		if !ok || film.Score > current.Score {
			best[film.Category] = TitleScore{Title: film.Title, Score: film.Score}
		}
	}
	return best
}

// CountByYear returns the number of films per release year.
func CountByYear(films []*catalog.Film) map[int]int {
	counts := make(map[int]int)
	for _, film := range films {
		counts[film.Year]++
	}
	return counts
}

// TotalCount returns the cardinality of the catalog.
func TotalCount(films []*catalog.Film) int {
	return len(films)
}

// RevenueByDay groups sale totals by the calendar-date portion of their
// timestamps and sums revenue per date.
func RevenueByDay(ledger []sales.Sale) map[string]float64 {
	revenue := make(map[string]float64)
	for _, sale := range ledger {
		revenue[sale.Timestamp.Day()] += sale.Total
	}
	return revenue
}

// QuantityByCategory accumulates sold quantity per film category,
// resolving each sale's category by title lookup against the current
// catalog. Sales whose title no longer exists count under
// UnknownCategory.
func QuantityByCategory(ledger []sales.Sale, films []*catalog.Film) map[string]int {
	categories := make(map[string]string, len(films))
	for _, film := range films {
		categories[film.Title] = film.Category
	}

	quantities := make(map[string]int)
	for _, sale := range ledger {
		category, ok := categories[sale.Title]
		if !ok {
			category = UnknownCategory
		}
		quantities[category] += sale.Quantity
	}
	return quantities
}

// QuantityByUser accumulates sold quantity per seller username.
func QuantityByUser(ledger []sales.Sale) map[string]int {
	quantities := make(map[string]int)
	for _, sale := range ledger {
		quantities[sale.Seller] += sale.Quantity
	}
	return quantities
}

// StockByTitle returns the remaining stock per film title.
func StockByTitle(films []*catalog.Film) map[string]int {
	stocks := make(map[string]int, len(films))
	for _, film := range films {
		stocks[film.Title] = film.Stock
	}
	return stocks
}

// Summary is the sales dashboard header: totals across the whole ledger.
type Summary struct {
	TotalRevenue float64
	SaleCount    int
	UnitsSold    int
}

// Summarize computes ledger-wide totals.
func Summarize(ledger []sales.Sale) Summary {
	var summary Summary
	summary.SaleCount = len(ledger)
	for _, sale := range ledger {
		summary.TotalRevenue += sale.Total
		summary.UnitsSold += sale.Quantity
	}
	return summary
}
