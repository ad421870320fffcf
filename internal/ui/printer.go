// Package ui renders generate progress and summaries to the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"

	"github.com/g5becks/doxmd/internal/generate"
)

type styles struct {
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	dim    *color.Color
	bold   *color.Color
}

func newStyles() styles {
	return styles{
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		dim:    color.New(color.Faint),
		bold:   color.New(color.Bold),
	}
}

// Printer renders generate progress events to stderr with colored
// output.
type Printer struct {
	w      io.Writer
	dryRun bool
	mu     sync.Mutex
	s      styles
}

// NewPrinter creates a Printer that writes to stderr.
func NewPrinter(dryRun bool) *Printer {
	return NewPrinterWithWriter(os.Stderr, dryRun)
}

// NewPrinterWithWriter creates a Printer that writes to the given
// writer.
func NewPrinterWithWriter(w io.Writer, dryRun bool) *Printer {
	return &Printer{
		w:      w,
		dryRun: dryRun,
		s:      newStyles(),
	}
}

// HandleEvent is the callback wired into generate.Options.OnEvent.
func (p *Printer) HandleEvent(e generate.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Kind {
	case generate.EventWrote:
		verb := "Wrote"
		if p.dryRun {
			verb = "Would write"
		}
		_, _ = fmt.Fprintf(p.w, "%s %s\n", p.s.green.Sprint(verb), e.Path)

	case generate.EventSkippedInput:
		_, _ = fmt.Fprintf(p.w, "%s %s: not valid Doxygen XML\n",
			p.s.yellow.Sprint("Skipping"), e.Input)

	case generate.EventSourceUnchanged:
		_, _ = fmt.Fprintf(p.w, "%s %s: not modified\n",
			p.s.dim.Sprint("Unchanged"), e.Source)

	case generate.EventSourceFailed:
		_, _ = fmt.Fprintf(p.w, "%s %s: %v\n",
			p.s.red.Sprint("Failed"), e.Source, e.Err)
	}
}

// PrintSummary renders the end-of-run totals.
func (p *Printer) PrintSummary(stats *generate.Stats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if stats == nil {
		return
	}

	prefix := ""
	if p.dryRun {
		prefix = "(dry run) "
	}

	_, _ = fmt.Fprintf(p.w, "%s%s %d file(s) in %d group(s)",
		prefix, p.s.bold.Sprint("Generated"), stats.Written, stats.Groups)

	if stats.Skipped > 0 {
		_, _ = fmt.Fprintf(p.w, ", %s", p.s.yellow.Sprintf("%d skipped", stats.Skipped))
	}

	if stats.Unchanged > 0 {
		_, _ = fmt.Fprintf(p.w, ", %d unchanged", stats.Unchanged)
	}

	if stats.Failed > 0 {
		_, _ = fmt.Fprintf(p.w, ", %s", p.s.red.Sprintf("%d failed", stats.Failed))
	}

	_, _ = fmt.Fprintln(p.w)
}
