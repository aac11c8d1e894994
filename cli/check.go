package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"

	"github.com/chpollin/depcha-aldersbach/diagnostics"
	"github.com/chpollin/depcha-aldersbach/loader"
	"github.com/chpollin/depcha-aldersbach/telemetry"
)

type CheckCmd struct {
	File    FileOrStdin `help:"Transcription filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Verbose bool        `help:"List every skipped record and rejected amount." short:"v"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var checkTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				checkTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr)
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		checkTimer = collector.Start(fmt.Sprintf("check %s", filepath.Base(cmd.File.Filename)))

		defer reportTelemetry()
	}

	sink := diagnostics.NewCollector()
	ldr := loader.New(loader.WithDiagnostics(sink))

	result, err := cmd.File.LoadResult(runCtx, ldr)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, err)

		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "decode error")

		reportTelemetry()
		os.Exit(1)
	}

	if cmd.Verbose {
		for _, event := range sink.Events() {
			printInfof(ctx.Stdout, "%s: record %s: %s", event.Kind, event.RecordID, event.Reason)
		}
	}

	skipped := sink.Count(diagnostics.KindRecordSkipped)
	rejected := sink.Count(diagnostics.KindAmountRejected)
	unknown := sink.Count(diagnostics.KindUnknownCurrency)

	printSuccess(ctx.Stdout, fmt.Sprintf("%d records, %d transactions", result.Records, len(result.Transactions)))
	if skipped > 0 || rejected > 0 {
		printInfof(ctx.Stdout, "%d records skipped, %d amounts rejected", skipped, rejected)
	}
	if unknown > 0 {
		printInfof(ctx.Stdout, "%d amounts carried an unknown currency", unknown)
	}

	return nil
}
