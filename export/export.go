// Package export assembles the logical payload behind CSV and JSON export.
//
// The payload is format-agnostic: plain structs with the field mapping,
// computed statistics, and a metadata block. The serializers in this package
// consume it, and so could any other writer; byte-level concerns like
// escaping live entirely in the serializer, never in the assembler.
package export

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/analysis"
	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

// UnknownDate is the placeholder rendered for transactions without a date.
const UnknownDate = "unknown"

// Metadata describes the exported set as a whole.
type Metadata struct {
	GeneratedAt time.Time `json:"generatedAt"`
	RecordCount int       `json:"recordCount"`

	// EarliestDate and LatestDate bound the present dates; both are
	// "unavailable" when no transaction is dated.
	EarliestDate string `json:"earliestDate"`
	LatestDate   string `json:"latestDate"`

	// Currencies lists the distinct codes present, in the fixed unit order.
	Currencies []currency.Code `json:"currencies"`

	// Filters records the criteria the exported view was produced with.
	Filters Filters `json:"filters"`
}

// Filters is the serializable form of the applied filter criteria.
type Filters struct {
	SearchText string `json:"searchText,omitempty"`
	Currency   string `json:"currency,omitempty"`
	SortKey    string `json:"sortKey,omitempty"`
}

// AmountPair renders one monetary amount for export.
type AmountPair struct {
	Quantity string        `json:"quantity"`
	Currency currency.Code `json:"currency"`
}

// Row is one exported transaction.
type Row struct {
	Date        string       `json:"date"`
	Text        string       `json:"text"`
	Amounts     []AmountPair `json:"amounts"`
	BaseValue   string       `json:"baseValue"`
	Category    string       `json:"category"`
	Entities    string       `json:"entities"`
	Commodities string       `json:"commodities"`
}

// Statistics summarizes the exported set.
type Statistics struct {
	TotalBaseValue       decimal.Decimal                  `json:"totalBaseValue"`
	MeanBaseValue        decimal.Decimal                  `json:"meanBaseValue"`
	CurrencyDistribution map[currency.Code]decimal.Decimal `json:"currencyDistribution"`
	DistinctEntities     int                              `json:"distinctEntities"`
}

// Payload is the complete format-agnostic export.
type Payload struct {
	Metadata   Metadata   `json:"metadata"`
	Rows       []Row      `json:"rows"`
	Statistics Statistics `json:"statistics"`
}

// BuildPayload assembles the export payload for a transaction view and the
// criteria that produced it.
func BuildPayload(transactions []*transaction.Transaction, applied transaction.FilterCriteria) *Payload {
	return &Payload{
		Metadata:   buildMetadata(transactions, applied),
		Rows:       buildRows(transactions),
		Statistics: buildStatistics(transactions),
	}
}

func buildMetadata(transactions []*transaction.Transaction, applied transaction.FilterCriteria) Metadata {
	earliest, latest := "unavailable", "unavailable"
	var minDate, maxDate *transaction.Date
	for _, t := range transactions {
		if t.Date.IsZero() {
			continue
		}
		if minDate == nil || t.Date.Before(minDate.Time) {
			minDate = t.Date
		}
		if maxDate == nil || t.Date.After(maxDate.Time) {
			maxDate = t.Date
		}
	}
	if minDate != nil {
		earliest, latest = minDate.String(), maxDate.String()
	}

	present := make(map[currency.Code]bool)
	for _, t := range transactions {
		for _, a := range t.Amounts {
			present[a.Currency] = true
		}
	}
	var codes []currency.Code
	for _, code := range currency.Codes() {
		if present[code] {
			codes = append(codes, code)
		}
	}

	return Metadata{
		GeneratedAt:  time.Now(),
		RecordCount:  len(transactions),
		EarliestDate: earliest,
		LatestDate:   latest,
		Currencies:   codes,
		Filters: Filters{
			SearchText: applied.SearchText,
			Currency:   string(applied.Currency),
			SortKey:    string(applied.SortKey),
		},
	}
}

func buildRows(transactions []*transaction.Transaction) []Row {
	rows := make([]Row, 0, len(transactions))
	for _, t := range transactions {
		row := Row{
			Date:        UnknownDate,
			Text:        t.Text,
			BaseValue:   t.BaseValue.String(),
			Category:    t.Category.String(),
			Entities:    strings.Join(t.Entities, "; "),
			Commodities: strings.Join(t.Commodities, "; "),
		}
		if !t.Date.IsZero() {
			row.Date = t.Date.String()
		}
		for _, a := range t.Amounts {
			row.Amounts = append(row.Amounts, AmountPair{
				Quantity: a.Quantity.String(),
				Currency: a.Currency,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func buildStatistics(transactions []*transaction.Transaction) Statistics {
	total := decimal.Zero
	entities := make(map[string]bool)
	for _, t := range transactions {
		total = total.Add(t.BaseValue)
		for _, e := range t.Entities {
			entities[strings.ToLower(e)] = true
		}
	}

	mean := decimal.Zero
	if len(transactions) > 0 {
		mean = total.Div(decimal.NewFromInt(int64(len(transactions))))
	}

	return Statistics{
		TotalBaseValue:       total,
		MeanBaseValue:        mean,
		CurrencyDistribution: analysis.ByCurrency(transactions, analysis.MetricValue),
		DistinctEntities:     len(entities),
	}
}
