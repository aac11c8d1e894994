// Package output provides styling helpers for terminal output.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Styles provides styled output helpers for the CLI. Styling degrades to
// plain text when the writer is not a terminal.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	opts := []termenv.OutputOption{}
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &Styles{output: termenv.NewOutput(w, opts...)}
}

// Success returns a styled success string (green + bold).
func (s *Styles) Success(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("2")).
		Bold().
		String()
}

// Error returns a styled error string (red + bold).
func (s *Styles) Error(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("1")).
		Bold().
		String()
}

// FilePath returns a styled file path (cyan).
func (s *Styles) FilePath(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("6")).
		String()
}

// Entity returns a styled entity name (yellow).
func (s *Styles) Entity(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Amount returns a styled amount/currency (magenta).
func (s *Styles) Amount(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("5")).
		String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns dimmed text, for secondary information.
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Warning returns a styled warning (yellow + bold).
func (s *Styles) Warning(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		Bold().
		String()
}
