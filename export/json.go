package export

import (
	"encoding/json"
	"io"
)

// WriteJSON serializes the full payload, including metadata and statistics,
// as indented JSON.
func WriteJSON(w io.Writer, payload *Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
