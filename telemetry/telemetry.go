// Package telemetry collects operation timings for the load and aggregation
// pipeline.
//
// Collectors travel through context so instrumentation stays out of function
// signatures; code paths that were not handed a collector get a no-op and
// pay nothing. The collected tree is reported once, at the end of a command.
package telemetry

import (
	"context"
	"io"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector gathers timers and reports them.
type Collector interface {
	// Start begins timing an operation. End the returned timer when the
	// operation completes.
	Start(name string) Timer

	// Report writes the collected timings.
	Report(w io.Writer)
}

// Timer tracks one operation. Nested operations hang off Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector attaches a collector to the context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or a no-op one.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return nopCollector{}
}

// StartTimer starts a timer on the context's collector.
func StartTimer(ctx context.Context, name string) Timer {
	return FromContext(ctx).Start(name)
}

type nopCollector struct{}

func (nopCollector) Start(name string) Timer { return nopTimer{} }
func (nopCollector) Report(w io.Writer)      {}

type nopTimer struct{}

func (nopTimer) End()                     {}
func (nopTimer) Child(name string) Timer  { return nopTimer{} }
