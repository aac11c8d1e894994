package currency

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

func TestToBaseUnit(t *testing.T) {
	one := decimal.NewFromInt(1)

	tests := []struct {
		name     string
		quantity int64
		code     Code
		want     decimal.Decimal
	}{
		{"FlorinIsIdentity", 18, Florin, decimal.NewFromInt(18)},
		{"ThirtySchillingMakeOneFlorin", 30, Schilling, one},
		{"TwoHundredFortyDenarMakeOneFlorin", 240, Denar, one},
		{"TwentyGroschenMakeOneFlorin", 20, Groschen, one},
		{"EightTalerMakeOneFlorin", 8, Taler, one},
		{"FourPfundMakeOneFlorin", 4, Pfund, one},
		{"PfennigEqualsDenar", 240, Pfennig, one},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToBaseUnit(decimal.NewFromInt(tt.quantity), tt.code)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestToBaseUnitUnknownCode(t *testing.T) {
	got := ToBaseUnit(decimal.NewFromInt(100), Code("kr"))
	assert.True(t, got.IsZero(), "unknown code must convert to zero, got %s", got)
}

func TestKnown(t *testing.T) {
	for _, code := range Codes() {
		assert.True(t, Known(code), "code %s should be known", code)
	}

	assert.False(t, Known(Code("kr")))
	assert.False(t, Known(Code("")))
	assert.False(t, Known(Code("FL")), "codes are case-sensitive")
}

func TestCodesIsACopy(t *testing.T) {
	codes := Codes()
	codes[0] = Code("mutated")

	assert.Equal(t, Florin, Codes()[0])
}
