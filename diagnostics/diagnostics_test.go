package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.AmountRejected("e1", "out of bounds", "999999")
	c.RecordSkipped("e2", "empty text")
	c.UnknownCurrency("e3", "kr")
	c.AmountRejected("e4", "not numeric", "abc")

	assert.Equal(t, 4, len(c.Events()))
	assert.Equal(t, 2, c.Count(KindAmountRejected))
	assert.Equal(t, 1, c.Count(KindRecordSkipped))
	assert.Equal(t, 1, c.Count(KindUnknownCurrency))

	first := c.Events()[0]
	assert.Equal(t, KindAmountRejected, first.Kind)
	assert.Equal(t, "e1", first.RecordID)
	assert.Equal(t, "out of bounds", first.Reason)
	assert.Equal(t, "999999", first.Value)
}

func TestEventsReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.RecordSkipped("e1", "empty text")

	events := c.Events()
	events[0].RecordID = "mutated"

	assert.Equal(t, "e1", c.Events()[0].RecordID)
}

func TestMulti(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	sink := Multi(a, b)
	sink.RecordSkipped("e1", "empty text")
	sink.UnknownCurrency("e2", "kr")

	assert.Equal(t, 2, len(a.Events()))
	assert.Equal(t, 2, len(b.Events()))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.AmountRejected("e1", "out of bounds", "999999")
	l.UnknownCurrency("e2", "kr")

	out := buf.String()
	assert.True(t, strings.Contains(out, "amount rejected"), "missing event in output: %s", out)
	assert.True(t, strings.Contains(out, "unknown currency"), "missing event in output: %s", out)
	assert.True(t, strings.Contains(out, "kr"), "missing code in output: %s", out)
}
