// Package record decodes the TEI-flavoured XML transcription of the account
// books into typed raw records.
//
// Decoding is deliberately a single explicit step at the edge of the system:
// everything downstream of this package operates on the Record shape and
// never touches markup again. A Record is a candidate transaction only; it
// carries no guarantees beyond well-formed XML, and all domain validation
// happens later in the transaction package.
package record

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Record is one decoded entry from the transcription, prior to validation.
type Record struct {
	// ID is the entry's external identifier from the source document. It is
	// an opaque string and may collide across documents.
	ID string

	// Text is the free-text description, verbatim from the transcription.
	Text string

	// Date is the machine-readable date text, empty when the entry carries
	// none. Typically ISO 8601, but transcriptions are not consistent.
	Date string

	// Amounts holds the monetary measures in document order.
	Amounts []Amount

	// Raw is the entry's inner XML, retained for display and debugging.
	Raw string
}

// Amount is one monetary measure, still in its textual source form.
type Amount struct {
	Quantity string
	Currency string
}

// document mirrors the transcription's XML structure.
type document struct {
	XMLName xml.Name `xml:"transcription"`
	Entries []entry  `xml:"entry"`
}

type entry struct {
	ID       string    `xml:"id,attr"`
	Text     string    `xml:"text"`
	Date     *dateElem `xml:"date"`
	Measures []measure `xml:"measure"`
	Inner    string    `xml:",innerxml"`
}

type dateElem struct {
	When string `xml:"when,attr"`
	Text string `xml:",chardata"`
}

type measure struct {
	Quantity string `xml:"quantity,attr"`
	Unit     string `xml:"unit,attr"`
}

// Decode reads a transcription document and returns its entries as records.
// It fails only on malformed XML; entries with missing or odd fields are
// still returned, since rejecting them is the parser's job, not ours.
func Decode(r io.Reader) ([]Record, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode transcription: %w", err)
	}

	records := make([]Record, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		records = append(records, e.toRecord())
	}
	return records, nil
}

// DecodeBytes decodes a transcription document from a byte slice.
func DecodeBytes(data []byte) ([]Record, error) {
	return Decode(bytes.NewReader(data))
}

func (e entry) toRecord() Record {
	rec := Record{
		ID:   e.ID,
		Text: strings.TrimSpace(e.Text),
		Raw:  strings.TrimSpace(e.Inner),
	}

	if e.Date != nil {
		// Prefer the machine-readable when attribute over the display text.
		rec.Date = strings.TrimSpace(e.Date.When)
		if rec.Date == "" {
			rec.Date = strings.TrimSpace(e.Date.Text)
		}
	}

	for _, m := range e.Measures {
		rec.Amounts = append(rec.Amounts, Amount{
			Quantity: strings.TrimSpace(m.Quantity),
			Currency: currencyRef(m.Unit),
		})
	}

	return rec
}

// currencyRef extracts the currency code from the unit reference. The
// transcription encodes units as URI fragments ("#fl"), pointing at the
// taxonomy in the document header.
func currencyRef(unit string) string {
	return strings.TrimPrefix(strings.TrimSpace(unit), "#")
}
