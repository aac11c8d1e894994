package transaction

import (
	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/diagnostics"
	"github.com/chpollin/depcha-aldersbach/record"
)

// Parser turns decoded records into validated transactions. Data-quality
// problems are reported to the injected diagnostics sink; they never abort
// parsing and never escape as errors. One malformed record costs exactly
// that record, one malformed amount costs exactly that amount.
type Parser struct {
	diag diagnostics.Sink
}

// NewParser creates a parser reporting to the given sink. A nil sink
// discards all events.
func NewParser(sink diagnostics.Sink) *Parser {
	if sink == nil {
		sink = diagnostics.Nop{}
	}
	return &Parser{diag: sink}
}

// Parse validates one record and returns its transaction, or nil when the
// record contributes nothing. The sequence index becomes the transaction's
// identifier, so identifiers follow parse order and are unique within a
// load.
func (p *Parser) Parse(rec record.Record, sequenceIndex int) *Transaction {
	// A record without text describes nothing and is dropped whole.
	if rec.Text == "" {
		p.diag.RecordSkipped(rec.ID, "empty text")
		return nil
	}

	// Absent or implausible dates are expected in this material; they make
	// the date field nil, not the record invalid.
	date := ParseHistoricalDate(rec.Date)

	amounts, baseValue := p.parseAmounts(rec)

	entities := ExtractEntities(rec.Text)

	return &Transaction{
		ID:          sequenceIndex,
		SourceID:    rec.ID,
		Date:        date,
		Text:        rec.Text,
		Amounts:     amounts,
		BaseValue:   baseValue,
		Category:    inferCategory(rec.Text),
		Entities:    append(append([]string{}, entities.People...), entities.Places...),
		People:      entities.People,
		Places:      entities.Places,
		Commodities: entities.Commodities,
		Raw:         rec.Raw,
	}
}

// parseAmounts validates each monetary measure and accumulates the base
// value over the kept ones. Failed amounts are dropped and reported.
func (p *Parser) parseAmounts(rec record.Record) ([]Amount, decimal.Decimal) {
	var amounts []Amount
	baseValue := decimal.Zero

	for _, raw := range rec.Amounts {
		quantity, ok := ParseQuantity(raw.Quantity)
		if !ok {
			p.diag.AmountRejected(rec.ID, "quantity not numeric or out of bounds", raw.Quantity)
			continue
		}

		if !IsKnownCurrency(raw.Currency) {
			p.diag.UnknownCurrency(rec.ID, raw.Currency)
			p.diag.AmountRejected(rec.ID, "unknown currency", raw.Currency)
			continue
		}

		amount := Amount{Quantity: quantity, Currency: currency.Code(raw.Currency)}
		amounts = append(amounts, amount)
		baseValue = baseValue.Add(amount.BaseValue())
	}

	return amounts, baseValue
}
