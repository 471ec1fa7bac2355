// Package diff renders the difference between a stored book and the text
// about to replace it. "bookrab upload --diff" prints it before writing.
package diff

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Differ compares a stored book with replacement text.
type Differ interface {
	Diff(ctx context.Context, title, text string) (Result, error)
}

// Run computes the diff through svc and writes it to w.
func Run(ctx context.Context, w io.Writer, svc Differ, title, text string, colour bool) (Result, error) {
	r, err := svc.Diff(ctx, title, text)
	if err != nil {
		return r, err
	}
	fmt.Fprint(w, r.Format(colour))
	return r, nil
}

// Result holds diff output.
type Result struct {
	Old     string `json:"old"`  // old label
	New     string `json:"new"`  // new label
	Diff    string `json:"diff"` // plain diff text
	Added   int    `json:"added"`
	Removed int    `json:"removed"`
}

// Changed reports whether the two texts differ.
func (r Result) Changed() bool {
	return r.Added > 0 || r.Removed > 0
}

// Compute returns a line-oriented diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	r := Result{Old: oldLabel, New: newLabel}
	r.Diff = format(d, &r)
	return r
}

// format converts diffs to unified-style text, counting changed lines.
func format(diffs []diffmatchpatch.Diff, r *Result) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			r.Removed += len(lines)
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			r.Added += len(lines)
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header and a change summary.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if !r.Changed() {
		return header + "(no changes)\n"
	}
	body := r.Diff
	if colour {
		body = Colourise(body)
	}
	return header + body + fmt.Sprintf("%d added, %d removed\n", r.Added, r.Removed)
}
