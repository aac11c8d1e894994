package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/chpollin/depcha-aldersbach/telemetry"
	"github.com/chpollin/depcha-aldersbach/web"
)

type WebCmd struct {
	File  string `help:"Transcription file to serve." arg:"" type:"existingfile"`
	Port  int    `help:"Port to listen on." default:"8080"`
	Watch bool   `help:"Reload the collection when the file changes." short:"w"`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	sourceFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	if _, err := os.Stat(sourceFile); err != nil {
		return fmt.Errorf("failed to access file: %w", err)
	}

	version := Version
	if version == "" {
		version = "dev"
	}

	server := web.New(cmd.Port, sourceFile)
	server.Version = version
	server.WatchEnabled = cmd.Watch

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, cmd.Port)
	printInfof(ctx.Stdout, "Serving transcription: %s", pathStyle.Render(sourceFile))

	if cmd.Watch {
		printInfof(ctx.Stdout, "Watching for file changes")
	}

	return server.Start(runCtx)
}
