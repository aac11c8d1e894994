package web

import (
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

// TransactionResponse is the JSON shape of one transaction.
type TransactionResponse struct {
	ID          int              `json:"id"`
	SourceID    string           `json:"sourceId"`
	Date        *string          `json:"date"`
	Text        string           `json:"text"`
	Amounts     []AmountResponse `json:"amounts"`
	BaseValue   decimal.Decimal  `json:"baseValue"`
	Category    string           `json:"category"`
	Entities    []string         `json:"entities"`
	Commodities []string         `json:"commodities"`
	Raw         string           `json:"raw,omitempty"`
}

// AmountResponse is the JSON shape of one monetary amount.
type AmountResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
	Currency currency.Code   `json:"currency"`
}

// TransactionsResponse is the JSON shape of the filtered table.
type TransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// handleTransactions handles GET /api/transactions.
//
// Query parameters:
//   - search: case-insensitive match against text or entities
//   - currency: keep only transactions with an amount in this unit
//   - sort: date (default), amount, or text
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	criteria, ok := criteriaFromQuery(r)
	if !ok {
		http.Error(w, "invalid sort key: "+r.URL.Query().Get("sort"), http.StatusBadRequest)
		return
	}

	view := s.store.ApplyFilter(criteria)

	response := TransactionsResponse{
		Transactions: make([]TransactionResponse, 0, len(view)),
		Total:        len(view),
	}
	for _, t := range view {
		response.Transactions = append(response.Transactions, convertTransaction(t, false))
	}
	writeJSON(w, response)
}

// handleTransaction handles GET /api/transactions/{id}, including the raw
// source for the detail view.
func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid transaction id", http.StatusBadRequest)
		return
	}

	t := s.store.Get(id)
	if t == nil {
		http.Error(w, "transaction not found", http.StatusNotFound)
		return
	}
	writeJSON(w, convertTransaction(t, true))
}

func criteriaFromQuery(r *http.Request) (transaction.FilterCriteria, bool) {
	q := r.URL.Query()

	sortKey, ok := transaction.ParseSortKey(q.Get("sort"))
	if !ok {
		return transaction.FilterCriteria{}, false
	}

	return transaction.FilterCriteria{
		SearchText: q.Get("search"),
		Currency:   currency.Code(q.Get("currency")),
		SortKey:    sortKey,
	}, true
}

func convertTransaction(t *transaction.Transaction, includeRaw bool) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		SourceID:    t.SourceID,
		Text:        t.Text,
		Amounts:     make([]AmountResponse, 0, len(t.Amounts)),
		BaseValue:   t.BaseValue,
		Category:    t.Category.String(),
		Entities:    t.Entities,
		Commodities: t.Commodities,
	}
	if !t.Date.IsZero() {
		d := t.Date.String()
		resp.Date = &d
	}
	for _, a := range t.Amounts {
		resp.Amounts = append(resp.Amounts, AmountResponse{Quantity: a.Quantity, Currency: a.Currency})
	}
	if includeRaw {
		resp.Raw = t.Raw
	}
	return resp
}
