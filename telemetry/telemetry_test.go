package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextDefaultsToNop(t *testing.T) {
	collector := FromContext(context.Background())

	// Must be safe to use without panicking.
	timer := collector.Start("op")
	timer.Child("child").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	assert.Equal(t, 0, buf.Len())
}

func TestWithCollectorRoundTrip(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	assert.Equal[Collector](t, collector, FromContext(ctx))
}

func TestTimingCollectorReport(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("load file.xml")
	decode := root.Child("decode")
	decode.End()
	parse := root.Child("parse")
	parse.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "load file.xml:"), "unexpected report: %s", out)
	assert.True(t, strings.Contains(out, "├─ decode:"), "unexpected report: %s", out)
	assert.True(t, strings.Contains(out, "└─ parse:"), "unexpected report: %s", out)
}

func TestStartTimerNesting(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	outer := StartTimer(ctx, "outer")
	inner := StartTimer(ctx, "inner")
	inner.End()
	outer.End()

	var buf bytes.Buffer
	collector.Report(&buf)
	out := buf.String()

	assert.True(t, strings.Contains(out, "└─ inner:"), "inner timer should nest under outer: %s", out)
}

func TestEmptyCollectorReportsNothing(t *testing.T) {
	var buf bytes.Buffer
	NewTimingCollector().Report(&buf)
	assert.Equal(t, 0, buf.Len())
}
