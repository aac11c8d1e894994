package transaction

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"PlainInteger", "18", "18", true},
		{"Decimal", "4.5", "4.5", true},
		{"Zero", "0", "0", true},
		{"Whitespace", "  18  ", "18", true},
		{"UpperBound", "100000", "100000", true},
		{"AboveUpperBound", "100001", "", false},
		{"Negative", "-1", "", false},
		{"Empty", "", "", false},
		{"Blank", "   ", "", false},
		{"NotNumeric", "achtzehn", "", false},
		{"HalfSymbol", "4 ½", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				want, err := decimal.NewFromString(tt.want)
				assert.NoError(t, err)
				assert.True(t, got.Equal(want), "got %s, want %s", got, want)
			}
		})
	}
}

func TestIsKnownCurrency(t *testing.T) {
	assert.True(t, IsKnownCurrency("fl"))
	assert.True(t, IsKnownCurrency("d"))
	assert.False(t, IsKnownCurrency("kr"))
	assert.False(t, IsKnownCurrency(""))
}

func TestParseHistoricalDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // empty = absent
	}{
		{"ISO", "1544-05-28", "1544-05-28"},
		{"ISOWhitespace", " 1544-05-28 ", "1544-05-28"},
		{"MonthOnly", "1544-05", "1544-05-01"},
		{"YearOnly", "1544", "1544-01-01"},
		{"GermanDayFirst", "28.05.1544", "1544-05-28"},
		{"YearBelowRange", "1199-12-31", ""},
		{"YearAboveRange", "2400-12-24", ""},
		{"LowerBoundYear", "1200-01-01", "1200-01-01"},
		{"UpperBoundYear", "1800-12-31", "1800-12-31"},
		{"Unparsable", "den .28. Maii", ""},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHistoricalDate(tt.input)
			if tt.want == "" {
				assert.True(t, got.IsZero(), "expected absent date, got %v", got)
				return
			}
			assert.False(t, got.IsZero())
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDateBoundInvariant(t *testing.T) {
	// Whatever the input, a constructed date has a year within the domain
	// bounds.
	inputs := []string{"1544-05-28", "1200", "1800-12", "0100-01-01", "9999-01-01", "garbage"}
	for _, input := range inputs {
		if d := ParseHistoricalDate(input); !d.IsZero() {
			year := d.Year()
			assert.True(t, year >= MinYear && year <= MaxYear, "year %d out of bounds for input %q", year, input)
		}
	}
}
