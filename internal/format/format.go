// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment, match highlighting, and markdown rendering.
package format

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/search"
)

const (
	bold  = "\033[1;31m"
	dim   = "\033[2m"
	reset = "\033[0m"
)

// chunkSeparator divides result chunks, matching grep's group separator.
const chunkSeparator = "--"

// humanSize formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func humanSize(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}

// List prints one book per line followed by its tags.
func List(w io.Writer, docs []book.Document) error {
	for _, doc := range docs {
		if len(doc.Tags) == 0 {
			fmt.Fprintln(w, doc.Title)
			continue
		}
		fmt.Fprintf(w, "%s  [%s]\n", doc.Title, strings.Join(doc.Tags, ", "))
	}
	return nil
}

// Sized pairs a document with the size of its text in bytes.
type Sized struct {
	book.Document
	Size int64
}

// Long prints books in long format with size, tag count and tags.
//
// SIZE and TAGS come first so the variable-width TITLE column does not
// disrupt alignment.
func Long(w io.Writer, docs []Sized) error {
	if len(docs) == 0 {
		return nil
	}

	maxTitle := 5 // minimum "TITLE"
	for _, d := range docs {
		if len(d.Title) > maxTitle {
			maxTitle = len(d.Title)
		}
	}

	fmt.Fprintf(w, "%6s  %4s  %-*s  %s\n", "SIZE", "TAGS", maxTitle, "TITLE", "LABELS")
	for _, d := range docs {
		labels := "-"
		if len(d.Tags) > 0 {
			labels = strings.Join(d.Tags, ",")
		}
		fmt.Fprintf(w, "%6s  %4d  %-*s  %s\n", humanSize(d.Size), len(d.Tags), maxTitle, d.Title, labels)
	}
	return nil
}

// Tags prints one tag per line.
func Tags(w io.Writer, tags []string) error {
	for _, t := range tags {
		fmt.Fprintln(w, t)
	}
	return nil
}

// Highlight replaces the match markers in chunk with ANSI emphasis. Without
// colour the markers are left in place so the output stays parseable.
func Highlight(chunk string, colour bool) string {
	if !colour {
		return chunk
	}
	r := strings.NewReplacer(search.MatchOpen, bold, search.MatchClose, reset)
	return r.Replace(chunk)
}

// Results prints each book's chunks under a title heading. Chunks are
// separated by "--" the way grep separates context groups.
func Results(w io.Writer, results []search.Results, colour bool) error {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		heading := fmt.Sprintf("== %s (%d)", r.Title, len(r.Results))
		if colour {
			heading = dim + heading + reset
		}
		fmt.Fprintln(w, heading)
		for j, chunk := range r.Results {
			if j > 0 {
				fmt.Fprintln(w, chunkSeparator)
			}
			fmt.Fprint(w, Highlight(chunk, colour))
			if !strings.HasSuffix(chunk, "\n") {
				fmt.Fprintln(w)
			}
		}
	}
	return nil
}

// Markdown converts results into a markdown document. Matches become bold
// spans and every chunk is a blockquote so line breaks survive rendering.
func Markdown(results []search.Results) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n\n", r.Title)
		if len(r.Results) == 0 {
			b.WriteString("_no matches_\n\n")
			continue
		}
		md := strings.NewReplacer(search.MatchOpen, "**", search.MatchClose, "**")
		for _, chunk := range r.Results {
			lines := strings.Split(strings.TrimRight(chunk, "\n"), "\n")
			for _, l := range lines {
				b.WriteString("> " + md.Replace(l) + "  \n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderMarkdown renders results through glamour. On a render failure it
// falls back to the plain markdown.
func RenderMarkdown(results []search.Results) string {
	md := Markdown(results)
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}

// History prints recorded searches, one line per entry.
func History(w io.Writer, entries []history.Entry) error {
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-24s  %3d  %q\n",
			e.Date.Local().Format("2006-01-02 15:04"),
			e.Title,
			len(e.Results),
			e.Pattern,
		)
	}
	return nil
}

// Audit prints audit log entries, newest first as returned by log.Recent.
func Audit(w io.Writer, entries []log.Entry) error {
	for _, e := range entries {
		status := "ok"
		if !e.Success {
			status = "FAIL"
		}
		ts := time.UnixMilli(e.Start).Format("2006-01-02 15:04:05")
		dur := time.Duration(e.End-e.Start) * time.Millisecond
		line := fmt.Sprintf("%s  %-4s  %-20s  %-8s  %6s", ts, status, e.Source, e.Action, dur)
		if e.Path != "" {
			line += "  " + e.Path
		}
		if len(e.Detail) > 0 {
			line += "  " + details(e.Detail)
		}
		if e.Error != "" {
			line += "  error=" + e.Error
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func details(d map[string]any) string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, d[k])
	}
	return strings.Join(parts, " ")
}
