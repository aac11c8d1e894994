package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/chpollin/depcha-aldersbach/diagnostics"
)

const testDocument = `<?xml version="1.0" encoding="UTF-8"?>
<transcription>
  <entry id="e1">
    <text>Item Martin Öder von Aitenpach geben waitz</text>
    <date when="1544-05-28"/>
    <measure quantity="18" unit="#fl"/>
  </entry>
  <entry id="e2">
    <date when="1544-06-01"/>
    <measure quantity="3" unit="#s"/>
  </entry>
  <entry id="e3">
    <text>Empfangen von dem Hofmeister</text>
    <measure quantity="garbled" unit="#fl"/>
    <measure quantity="12" unit="#d"/>
  </entry>
</transcription>`

func TestLoadBytes(t *testing.T) {
	sink := diagnostics.NewCollector()
	ldr := New(WithDiagnostics(sink))

	result, err := ldr.LoadBytes(context.Background(), "test.xml", []byte(testDocument))
	assert.NoError(t, err)

	assert.Equal(t, 3, result.Records)
	assert.Equal(t, 1, result.Skipped, "the textless record is skipped")
	assert.Equal(t, 2, len(result.Transactions))

	// Identifiers stay dense across skips.
	assert.Equal(t, 0, result.Transactions[0].ID)
	assert.Equal(t, 1, result.Transactions[1].ID)
	assert.Equal(t, "e1", result.Transactions[0].SourceID)
	assert.Equal(t, "e3", result.Transactions[1].SourceID)

	// The garbled amount was dropped, the valid one kept.
	assert.Equal(t, 1, len(result.Transactions[1].Amounts))
	assert.True(t, result.Transactions[1].BaseValue.Equal(decimal.NewFromInt(12).Div(decimal.NewFromInt(240))),
		"base value %s", result.Transactions[1].BaseValue)

	assert.Equal(t, 1, sink.Count(diagnostics.KindRecordSkipped))
	assert.Equal(t, 1, sink.Count(diagnostics.KindAmountRejected))
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.xml")
	assert.NoError(t, os.WriteFile(path, []byte(testDocument), 0o644))

	result, err := New().Load(context.Background(), path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(result.Transactions))
	assert.True(t, result.Duration > 0)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}

func TestLoadMalformedDocument(t *testing.T) {
	_, err := New().LoadBytes(context.Background(), "bad.xml", []byte("<transcription><entry>"))
	assert.Error(t, err)
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().LoadBytes(ctx, "test.xml", []byte(testDocument))
	assert.IsError(t, err, context.Canceled)
}
