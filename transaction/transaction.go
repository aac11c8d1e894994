// Package transaction contains the normalization core: the typed transaction
// model, the validators that guard it, the rule-based entity extractor, the
// record parser, and the store that serves filtered views.
//
// A Transaction is constructed once by the Parser and is immutable
// afterwards. The Store holds the full collection and only ever produces new
// slices of references; it never mutates individual transactions.
package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/currency"
)

// Category classifies a transaction by the direction of value flow, derived
// once from keyword inspection of the text.
type Category int

const (
	// Trade is the default when the text signals neither direction.
	Trade Category = iota
	Income
	Expense
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case Income:
		return "income"
	case Expense:
		return "expense"
	default:
		return "trade"
	}
}

// Date represents a calendar date from the account books. Only dates whose
// year lies within the plausible range of the source material are ever
// constructed; see ParseHistoricalDate.
type Date struct {
	time.Time
}

// NewDate parses an ISO 8601 date (YYYY-MM-DD).
func NewDate(s string) (*Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &Date{Time: t}, nil
}

// IsZero returns true if the Date is nil or represents the zero time.
// Nil-safe so absent dates can be handled without guards.
func (d *Date) IsZero() bool {
	if d == nil {
		return true
	}
	return d.Time.IsZero()
}

// String returns the ISO 8601 representation, or an empty string when absent.
func (d *Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

// Amount is one validated monetary amount. Both fields passed validation at
// parse time: the quantity lies within domain bounds and the currency is one
// of the known units.
type Amount struct {
	Quantity decimal.Decimal
	Currency currency.Code
}

// BaseValue returns the amount converted into florins.
func (a Amount) BaseValue() decimal.Decimal {
	return currency.ToBaseUnit(a.Quantity, a.Currency)
}

// Transaction is the central entity: one validated entry from the account
// books.
type Transaction struct {
	// ID is the sequence-assigned identifier, unique within a loaded
	// collection.
	ID int

	// SourceID is the originating record's external identifier. Opaque, and
	// not usable for deduplication since it may collide across reloads.
	SourceID string

	// Date is the calendar date, nil when the record carried none or the
	// date fell outside the plausible year range.
	Date *Date

	// Text is the original free-text description. Always non-empty; records
	// without text never become transactions.
	Text string

	// Amounts holds the validated monetary amounts in document order.
	// Possibly empty.
	Amounts []Amount

	// BaseValue is the sum of all amounts converted into florins. Derived
	// from Amounts at construction, never mutated independently.
	BaseValue decimal.Decimal

	// Category is the derived value-flow classification.
	Category Category

	// Entities holds the extracted person and place mentions from Text, in
	// first-occurrence order. Commodities are kept separate.
	Entities []string

	// People and Places are the per-class views behind Entities, used by
	// the relatedness scorer which weighs the classes differently.
	People []string
	Places []string

	// Commodities holds the extracted trade-good mentions.
	Commodities []string

	// Raw is the record's original serialized form, retained for display
	// and debugging only. No aggregation logic reads it.
	Raw string
}

// HasCurrency reports whether any amount uses the given currency code.
func (t *Transaction) HasCurrency(code currency.Code) bool {
	for _, a := range t.Amounts {
		if a.Currency == code {
			return true
		}
	}
	return false
}
