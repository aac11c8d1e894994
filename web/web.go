// Package web provides a localhost HTTP server over a loaded transaction
// collection: the filtered table, the aggregations behind the charts, the
// related-transactions view, and the CSV/JSON export downloads.
//
// SECURITY WARNING: the server has no authentication and should only be
// bound to localhost (127.0.0.1). Do not expose it to untrusted networks.
//
// The rendering layer is someone else's problem by design: every endpoint
// returns plain data structures, and any charting frontend can consume
// them.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/chpollin/depcha-aldersbach/diagnostics"
	"github.com/chpollin/depcha-aldersbach/loader"
	"github.com/chpollin/depcha-aldersbach/telemetry"
	"github.com/chpollin/depcha-aldersbach/transaction"
)

// Server serves one transcription file.
type Server struct {
	Port         int
	Host         string
	Version      string
	WatchEnabled bool

	sourceFile string
	store      *transaction.Store
	log        zerolog.Logger

	// mu guards the load report; the store handles its own locking and is
	// swapped as a whole on reload.
	mu     sync.RWMutex
	report *LoadReport
}

// LoadReport is the JSON shape of the latest load's diagnostics.
type LoadReport struct {
	SourceFile   string `json:"sourceFile"`
	Records      int    `json:"records"`
	Transactions int    `json:"transactions"`
	Skipped      int    `json:"skipped"`
	Rejected     int    `json:"rejectedAmounts"`
	Duration     string `json:"duration"`
	LoadedAt     string `json:"loadedAt"`
}

// New creates a server for the given transcription file.
func New(port int, sourceFile string) *Server {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return &Server{
		Port:       port,
		Host:       "127.0.0.1",
		sourceFile: sourceFile,
		store:      transaction.NewStore(),
		log:        zerolog.New(output).With().Timestamp().Logger(),
	}
}

// Start loads the transcription and serves until the listener fails. When
// watching is enabled, edits to the source file reload the collection.
func (s *Server) Start(ctx context.Context) error {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("web.start %s:%d", s.Host, s.Port))
	defer timer.End()

	if s.sourceFile == "" {
		return fmt.Errorf("transcription file is required")
	}

	if err := s.reload(ctx); err != nil {
		return fmt.Errorf("failed to load transcription: %w", err)
	}

	if s.WatchEnabled {
		if err := s.startWatcher(ctx); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.Host, s.Port)
	s.log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, s.router())
}

func (s *Server) router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/transactions", s.handleTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleTransaction)
	mux.HandleFunc("GET /api/related", s.handleRelated)
	mux.HandleFunc("GET /api/aggregates/time", s.handleTimeBuckets)
	mux.HandleFunc("GET /api/aggregates/currency", s.handleCurrency)
	mux.HandleFunc("GET /api/aggregates/histogram", s.handleHistogram)
	mux.HandleFunc("GET /api/aggregates/seasonal", s.handleSeasonal)
	mux.HandleFunc("GET /api/export.json", s.handleExportJSON)
	mux.HandleFunc("GET /api/export.csv", s.handleExportCSV)
	mux.HandleFunc("GET /api/report", s.handleReport)

	return mux
}

// reload loads the source file and swaps the collection in atomically:
// requests racing a reload see either the old complete collection or the
// new one, never a partial state.
func (s *Server) reload(ctx context.Context) error {
	sink := diagnostics.NewCollector()
	ldr := loader.New(loader.WithDiagnostics(sink))

	result, err := ldr.Load(ctx, s.sourceFile)
	if err != nil {
		return err
	}

	s.store.Replace(result.Transactions)

	s.mu.Lock()
	s.report = &LoadReport{
		SourceFile:   s.sourceFile,
		Records:      result.Records,
		Transactions: len(result.Transactions),
		Skipped:      result.Skipped,
		Rejected:     sink.Count(diagnostics.KindAmountRejected),
		Duration:     result.Duration.String(),
		LoadedAt:     time.Now().Format(time.RFC3339),
	}
	s.mu.Unlock()

	s.log.Info().
		Int("records", result.Records).
		Int("transactions", len(result.Transactions)).
		Int("skipped", result.Skipped).
		Msg("transcription loaded")

	return nil
}

// startWatcher watches the source file and reloads on changes.
func (s *Server) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(s.sourceFile); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.sourceFile, err)
	}

	go s.runWatcher(ctx, watcher)
	return nil
}

// runWatcher processes file system events with debouncing, since editors
// often write files in multiple steps.
func (s *Server) runWatcher(ctx context.Context, watcher *fsnotify.Watcher) {
	const debounceDelay = 100 * time.Millisecond

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
		_ = watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, func() {
				if err := s.reload(ctx); err != nil {
					s.log.Error().Err(err).Msg("reload failed, keeping previous collection")
				}
				// Re-add in case the file was replaced by rename.
				_ = watcher.Add(s.sourceFile)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Error().Err(err).Msg("file watcher error")
		}
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, s.report)
}

// writeJSON writes a JSON response, falling back to a 500 if encoding
// fails.
func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
