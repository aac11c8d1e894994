package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/chpollin/depcha-aldersbach/analysis"
	"github.com/chpollin/depcha-aldersbach/export"
	"github.com/chpollin/depcha-aldersbach/loader"
	"github.com/chpollin/depcha-aldersbach/output"
	"github.com/chpollin/depcha-aldersbach/telemetry"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

type RelatedCmd struct {
	File FileOrStdin `help:"Transcription filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	ID   int         `help:"Transaction to rank the collection against." required:""`
	Top  int         `help:"Number of candidates to show." default:"10"`
}

func (cmd *RelatedCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	result, err := cmd.File.LoadResult(runCtx, loader.New())
	if err != nil {
		return err
	}

	var target *transaction.Transaction
	for _, t := range result.Transactions {
		if t.ID == cmd.ID {
			target = t
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no transaction with id %d", cmd.ID)
	}

	styles := output.NewStyles(ctx.Stdout)

	date := export.UnknownDate
	if !target.Date.IsZero() {
		date = target.Date.String()
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "%s %s  %s\n\n",
		styles.Keyword(date),
		styles.Amount(target.BaseValue.StringFixed(2)+" fl"),
		target.Text)

	ranked := analysis.ScoreRelated(target, result.Transactions, cmd.Top)
	if len(ranked) == 0 {
		_, _ = fmt.Fprintln(ctx.Stdout, styles.Dim("no related transactions"))
		return nil
	}

	for _, candidate := range ranked {
		date := export.UnknownDate
		if !candidate.Transaction.Date.IsZero() {
			date = candidate.Transaction.Date.String()
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s  %s  %s\n",
			styles.Amount(fmt.Sprintf("%2d", candidate.Score)),
			styles.Dim(date),
			candidate.Transaction.Text)
	}

	return nil
}
