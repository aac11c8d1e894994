package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/export"
	"github.com/chpollin/depcha-aldersbach/loader"
	"github.com/chpollin/depcha-aldersbach/telemetry"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

type ExportCmd struct {
	File   FileOrStdin `help:"Transcription filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format." enum:"csv,json" default:"csv"`
	Out    string      `help:"Write to this file instead of stdout." short:"o"`

	Search   string `help:"Keep only transactions matching this text."`
	Currency string `help:"Keep only transactions with an amount in this unit."`
	Sort     string `help:"Sort key: date, amount, or text." default:"date"`
}

func (cmd *ExportCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	sortKey, ok := transaction.ParseSortKey(cmd.Sort)
	if !ok {
		return fmt.Errorf("invalid sort key: %s", cmd.Sort)
	}
	criteria := transaction.FilterCriteria{
		SearchText: cmd.Search,
		Currency:   currency.Code(cmd.Currency),
		SortKey:    sortKey,
	}

	result, err := cmd.File.LoadResult(runCtx, loader.New())
	if err != nil {
		return err
	}

	store := transaction.NewStore()
	store.Replace(result.Transactions)
	payload := export.BuildPayload(store.ApplyFilter(criteria), criteria)

	out := io.Writer(ctx.Stdout)
	if cmd.Out != "" {
		if _, err := os.Stat(cmd.Out); err == nil {
			confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q already exists. Overwrite it?", cmd.Out))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !confirmed {
				return fmt.Errorf("refusing to overwrite %s", cmd.Out)
			}
		}

		f, err := os.Create(cmd.Out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch cmd.Format {
	case "json":
		err = export.WriteJSON(out, payload)
	default:
		err = export.WriteCSV(out, payload)
	}
	if err != nil {
		return err
	}

	if cmd.Out != "" {
		printSuccess(ctx.Stdout, fmt.Sprintf("Exported %d transactions to %s",
			len(payload.Rows), pathStyle.Render(cmd.Out)))
	}

	return nil
}
