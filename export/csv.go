package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// csvHeader fixes the column layout of the exported table.
var csvHeader = []string{"date", "text", "amounts", "base_value", "category", "entities", "commodities"}

// WriteCSV serializes the payload's rows as CSV. Amounts render as
// "quantity code" pairs joined with "; " in a single column. Quoting and
// escaping are encoding/csv's concern.
func WriteCSV(w io.Writer, payload *Payload) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range payload.Rows {
		pairs := make([]string, 0, len(row.Amounts))
		for _, a := range row.Amounts {
			pairs = append(pairs, fmt.Sprintf("%s %s", a.Quantity, a.Currency))
		}

		fields := []string{
			row.Date,
			row.Text,
			strings.Join(pairs, "; "),
			row.BaseValue,
			row.Category,
			row.Entities,
			row.Commodities,
		}
		if err := cw.Write(fields); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
