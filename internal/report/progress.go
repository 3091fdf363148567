package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/turbulence-sh/turbulence/internal/pipeline"
)

const progressBarLength = 20

// Progress renders a live terminal progress bar as measurements complete.
// It is safe for use as a pipeline observer from the collector goroutine.
type Progress struct {
	mu      sync.Mutex
	out     io.Writer
	total   int
	done    int
	failed  int
	stopped bool
}

// NewProgress creates a progress bar for the given number of tasks.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// Observer returns the observer callback feeding this progress bar.
func (p *Progress) Observer() pipeline.Observer {
	return func(event pipeline.CompletionEvent) {
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.stopped {
			return
		}

		p.done++
		if event.Failed {
			p.failed++
		}

		p.redraw()
	}
}

// Finish terminates the bar line. Further events are ignored.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}

	p.stopped = true

	fmt.Fprintln(p.out)
}

// redraw repaints the bar in place. Callers must hold the mutex.
func (p *Progress) redraw() {
	filled := progressBarLength
	if p.total > 0 {
		filled = p.done * progressBarLength / p.total
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarLength-filled)

	fmt.Fprintf(p.out, "\r[%s] %d/%d measured", bar, p.done, p.total)

	if p.failed > 0 {
		fmt.Fprintf(p.out, " (%d failed)", p.failed)
	}
}
