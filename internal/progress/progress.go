// Package progress draws a single-line counter for bulk book operations.
// Output goes to stderr so stdout stays clean for piping, and nothing is
// drawn unless stderr is a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
const minItems = 5

// Progress tracks and displays operation progress.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
	width   int
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return NewWriter(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), label, total)
}

// NewWriter creates a progress reporter on w. tty controls whether
// anything is drawn.
func NewWriter(w io.Writer, tty bool, label string, total int) *Progress {
	return &Progress{w: w, label: label, total: total, isTTY: tty}
}

// Increment advances the progress counter by one.
func (p *Progress) Increment() {
	p.current++
}

// Current returns the number of completed items.
func (p *Progress) Current() int { return p.current }

// Print redraws the counter in place.
func (p *Progress) Print() {
	if !p.visible() {
		return
	}
	line := fmt.Sprintf("%s... %d/%d (%d%%)", p.label, p.current, p.total, p.current*100/p.total)
	p.width = max(p.width, len(line))
	fmt.Fprintf(p.w, "\r%s", line)
}

// Done clears the counter line to make way for final output.
func (p *Progress) Done() {
	if !p.visible() || p.width == 0 {
		return
	}
	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", p.width))
}

func (p *Progress) visible() bool {
	return p.isTTY && p.total >= minItems
}
