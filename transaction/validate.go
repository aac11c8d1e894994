package transaction

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/currency"
)

// Domain bounds for the source material. The quantity ceiling rejects
// transcription and OCR artifacts before they can corrupt aggregates; a
// single line-item above it is implausible for these books. The year range
// covers the period the account books could possibly document.
const (
	MinYear = 1200
	MaxYear = 1800
)

var maxQuantity = decimal.NewFromInt(100000)

// ParseQuantity validates a raw quantity string. It returns the parsed value
// and true, or decimal.Zero and false when the input is empty, not numeric,
// negative, or above the domain ceiling. It never fails with an error;
// malformed input is expected in this material.
func ParseQuantity(text string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, false
	}

	if d.IsNegative() || d.GreaterThan(maxQuantity) {
		return decimal.Zero, false
	}

	return d, true
}

// IsKnownCurrency reports whether code is one of the known historical units.
func IsKnownCurrency(code string) bool {
	return currency.Known(currency.Code(code))
}

// dateLayouts are tried in order when the input is not plain ISO. The
// transcriptions occasionally carry month- or year-only dates and the odd
// German day-first form.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
	"02.01.2006",
	"2.1.2006",
}

// ParseHistoricalDate parses a date string and validates its year against
// the plausible range of the source material. Any failure, whether the text
// is unparsable or the year is out of range, yields nil: dates are optional
// metadata here, never an error.
func ParseHistoricalDate(text string) *Date {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, trimmed)
		if err != nil {
			continue
		}
		if t.Year() < MinYear || t.Year() > MaxYear {
			return nil
		}
		return &Date{Time: t}
	}

	return nil
}
