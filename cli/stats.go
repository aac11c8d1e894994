package cli

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/chpollin/depcha-aldersbach/analysis"
	"github.com/chpollin/depcha-aldersbach/currency"
	"github.com/chpollin/depcha-aldersbach/export"
	"github.com/chpollin/depcha-aldersbach/loader"
	"github.com/chpollin/depcha-aldersbach/output"
	"github.com/chpollin/depcha-aldersbach/telemetry"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

type StatsCmd struct {
	File FileOrStdin `help:"Transcription filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *StatsCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	payload := export.BuildPayload(result.Transactions, transaction.FilterCriteria{})
	styles := output.NewStyles(ctx.Stdout)

	meta := payload.Metadata
	stats := payload.Statistics

	_, _ = fmt.Fprintf(ctx.Stdout, "%s %s\n\n",
		styles.Keyword("Transcription"),
		styles.FilePath(cmd.File.GetAbsoluteFilename()))

	_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %d\n", pad("Transactions"), meta.RecordCount)
	_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %s to %s\n", pad("Date range"), meta.EarliestDate, meta.LatestDate)
	_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %s\n", pad("Total value"),
		styles.Amount(stats.TotalBaseValue.StringFixed(2)+" fl"))
	_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %s\n", pad("Mean value"),
		styles.Amount(stats.MeanBaseValue.StringFixed(2)+" fl"))
	_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %d\n", pad("Entities"), stats.DistinctEntities)

	counts := analysis.ByCurrency(result.Transactions, analysis.MetricCount)
	if len(counts) > 0 {
		_, _ = fmt.Fprintf(ctx.Stdout, "\n%s\n", styles.Keyword("Amounts by currency"))
		for _, code := range currency.Codes() {
			count, present := counts[code]
			if !present {
				continue
			}
			name := fmt.Sprintf("%s (%s)", currency.Name(code), code)
			_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %s\n", pad(name), count.String())
		}
	}

	categories := make(map[transaction.Category]int)
	for _, t := range result.Transactions {
		categories[t.Category]++
	}
	_, _ = fmt.Fprintf(ctx.Stdout, "\n%s\n", styles.Keyword("Categories"))
	for _, cat := range []transaction.Category{transaction.Income, transaction.Expense, transaction.Trade} {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s   %d\n", pad(cat.String()), categories[cat])
	}

	return nil
}

// pad aligns labels in the summary columns. Currency names carry umlauts,
// so width is measured in display cells, not bytes.
func pad(label string) string {
	return runewidth.FillRight(label, 18)
}
