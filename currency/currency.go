// Package currency defines the historical units of account found in the
// Aldersbach account books and their conversion into the common base unit,
// the florin (Gulden).
//
// The conversion table is configuration data, not logic: the rates are
// historical approximations for the period covered by the books, stated once
// and never recomputed at runtime. All arithmetic uses decimal values to
// avoid floating point drift when summing converted amounts.
package currency

import "github.com/shopspring/decimal"

// Code identifies a unit of account as it appears in the transcription's
// currency references (the URI fragment without the leading '#').
type Code string

// The fixed set of known units. Any other code is invalid and is rejected
// at parse time.
const (
	Florin    Code = "fl" // Gulden, the base unit
	Schilling Code = "s"  // Schilling, 30 to the florin
	Denar     Code = "d"  // Denar, 240 to the florin
	Groschen  Code = "gr" // Groschen, 20 to the florin
	Taler     Code = "t"  // Taler, 8 to the florin
	Pfund     Code = "lb" // Pfund, 4 to the florin
	Pfennig   Code = "pf" // Pfennig, same as the denar
)

// unitsPerFlorin holds how many of each unit make up one florin. Storing the
// divisor keeps conversions like 240 d -> 1 fl exact under decimal division.
var unitsPerFlorin = map[Code]decimal.Decimal{
	Florin:    decimal.NewFromInt(1),
	Schilling: decimal.NewFromInt(30),
	Denar:     decimal.NewFromInt(240),
	Groschen:  decimal.NewFromInt(20),
	Taler:     decimal.NewFromInt(8),
	Pfund:     decimal.NewFromInt(4),
	Pfennig:   decimal.NewFromInt(240),
}

// names maps codes to their display names.
var names = map[Code]string{
	Florin:    "Gulden",
	Schilling: "Schilling",
	Denar:     "Denar",
	Groschen:  "Groschen",
	Taler:     "Taler",
	Pfund:     "Pfund",
	Pfennig:   "Pfennig",
}

// codeOrder fixes the iteration order for reports and tallies.
var codeOrder = []Code{Florin, Schilling, Denar, Groschen, Taler, Pfund, Pfennig}

// Known reports whether code is one of the fixed historical units.
func Known(code Code) bool {
	_, ok := unitsPerFlorin[code]
	return ok
}

// Codes returns all known codes in their fixed display order.
// The returned slice is a copy and safe to modify.
func Codes() []Code {
	out := make([]Code, len(codeOrder))
	copy(out, codeOrder)
	return out
}

// Name returns the display name for a code, or the code itself when unknown.
func Name(code Code) string {
	if name, ok := names[code]; ok {
		return name
	}
	return string(code)
}

// ToBaseUnit converts a quantity of the given unit into florins.
//
// Unknown codes yield zero rather than an error; the caller is expected to
// report the code as a data-quality signal. This function itself never
// fails, which keeps aggregation loops free of error plumbing.
func ToBaseUnit(quantity decimal.Decimal, code Code) decimal.Decimal {
	divisor, ok := unitsPerFlorin[code]
	if !ok {
		return decimal.Zero
	}
	return quantity.Div(divisor)
}
