// Package sales provides the append-only sales ledger for filmdesk.
// A Sale is immutable once written; the ledger never mutates or deletes
// recorded entries. Reversals, if ever needed, would be modelled as new
// compensating entries.
package sales

import (
	"time"
)

// TimestampLayout is the wire format of sale timestamps in the sales
// document.
const TimestampLayout = "2006-01-02 15:04:05"

// DayLayout is the calendar-date portion of a timestamp, used by the
// revenue-by-day aggregation.
const DayLayout = "2006-01-02"

// Timestamp wraps time.Time with the ledger's document encoding.
type Timestamp struct {
	time.Time
}

// NewTimestamp creates a Timestamp from a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Day returns the calendar-date portion of the timestamp.
func (t Timestamp) Day() string {
	return t.Format(DayLayout)
}

// String returns the timestamp in its document encoding.
func (t Timestamp) String() string {
	return t.Format(TimestampLayout)
}

// MarshalJSON encodes the timestamp as "YYYY-MM-DD HH:MM:SS".
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimestampLayout) + `"`), nil
}

// UnmarshalJSON decodes a "YYYY-MM-DD HH:MM:SS" timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	parsed, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Sale is a single immutable ledger entry. Title references a film by
// title, not by strong reference: a sale stays valid standalone even if
// the film is later removed from the catalog. Total is computed as
// Quantity * UnitPrice at recording time.
type Sale struct {
	Timestamp Timestamp `json:"timestamp"`
	Title     string    `json:"title"`
	Seller    string    `json:"seller"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Total     float64   `json:"total"`
}

// Ledger is the append-only transaction log.
type Ledger struct {
	sales []Sale
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// NewLedgerFromRecords creates a ledger from loaded sale records,
// preserving their order.
func NewLedgerFromRecords(records []Sale) *Ledger {
	sales := make([]Sale, len(records))
	copy(sales, records)
	return &Ledger{sales: sales}
}

// Append adds a sale to the end of the ledger.
func (l *Ledger) Append(sale Sale) {
	l.sales = append(l.sales, sale)
}

// DropLast removes the most recently appended sale. It exists solely so
// the sale transaction can restore in-memory state when persisting the
// appended entry fails; successfully persisted sales are never removed.
func (l *Ledger) DropLast() {
	if len(l.sales) > 0 {
		l.sales = l.sales[:len(l.sales)-1]
	}
}

// List returns a copy of the recorded sales in append order.
func (l *Ledger) List() []Sale {
	sales := make([]Sale, len(l.sales))
	copy(sales, l.sales)
	return sales
}

// Records returns the sales for persistence. Same as List.
func (l *Ledger) Records() []Sale {
	return l.List()
}

// Len returns the number of recorded sales.
func (l *Ledger) Len() int {
	return len(l.sales)
}
