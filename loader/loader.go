// Package loader drives the full normalization pipeline: read a
// transcription file, decode its records, parse every record into a
// transaction, and hand back the collection together with a load report.
//
// A load never fails because individual records or amounts were malformed;
// those are dropped, counted, and reported through the diagnostics sink.
// Only I/O failures and malformed XML fail the load as a whole.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chpollin/depcha-aldersbach/diagnostics"
	"github.com/chpollin/depcha-aldersbach/record"
	"github.com/chpollin/depcha-aldersbach/telemetry"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

// Loader loads transcription files. Configure it with functional options:
//
//	ldr := loader.New(loader.WithDiagnostics(sink))
type Loader struct {
	diag diagnostics.Sink
}

// Option configures a Loader.
type Option func(*Loader)

// WithDiagnostics routes the pipeline's data-quality events to the given
// sink. Without it, events are discarded.
func WithDiagnostics(sink diagnostics.Sink) Option {
	return func(l *Loader) {
		l.diag = sink
	}
}

// New creates a Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{diag: diagnostics.Nop{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is one completed load: the parsed collection plus the numbers a
// caller needs to report data quality.
type Result struct {
	// Transactions holds the parsed collection in source order.
	Transactions []*transaction.Transaction

	// Records is the number of decoded records, Skipped how many of them
	// produced no transaction.
	Records int
	Skipped int

	// Duration covers decoding and parsing, not file I/O.
	Duration time.Duration
}

// Load reads and parses a transcription file.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filepath.Base(filename), data)
}

// LoadBytes parses an already-read transcription document. The name is used
// only for telemetry labels.
func (l *Loader) LoadBytes(ctx context.Context, name string, data []byte) (*Result, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("load %s", name))
	defer timer.End()
	start := time.Now()

	decodeTimer := timer.Child("decode")
	records, err := record.DecodeBytes(data)
	decodeTimer.End()
	if err != nil {
		return nil, err
	}

	parseTimer := timer.Child(fmt.Sprintf("parse (%d records)", len(records)))
	defer parseTimer.End()

	parser := transaction.NewParser(l.diag)
	result := &Result{Records: len(records)}

	for _, rec := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		// Identifiers follow parse order over kept transactions, so they
		// stay dense even when records are skipped.
		txn := parser.Parse(rec, len(result.Transactions))
		if txn == nil {
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}

	result.Duration = time.Since(start)
	return result, nil
}
