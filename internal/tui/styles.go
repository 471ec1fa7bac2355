package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jpl-au/bookrab/internal/search"
)

var (
	colorAccent = lipgloss.Color("#7aa2f7")
	colorMuted  = lipgloss.Color("#565f89")
	colorGreen  = lipgloss.Color("#9ece6a")
	colorRed    = lipgloss.Color("#f7768e")
	colorYellow = lipgloss.Color("#e0af68")
	colorBg     = lipgloss.Color("#1a1b26")
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.
				BorderForeground(colorAccent)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cursorStyle = lipgloss.NewStyle().
			Foreground(colorBg).
			Background(colorAccent)

	includeStyle = lipgloss.NewStyle().Foreground(colorGreen)
	excludeStyle = lipgloss.NewStyle().Foreground(colorRed)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)

	highlightStyle = lipgloss.NewStyle().
			Background(colorYellow).
			Foreground(colorBg).
			Bold(true)
)

// renderResults lays out search results for the viewport, drawing each
// marked span with highlightStyle.
func renderResults(results []search.Results) string {
	if len(results) == 0 {
		return mutedStyle.Render("no books searched")
	}
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", r.Title, len(r.Results))))
		b.WriteString("\n")
		if len(r.Results) == 0 {
			b.WriteString(mutedStyle.Render("no matches"))
			b.WriteString("\n")
			continue
		}
		for j, chunk := range r.Results {
			if j > 0 {
				b.WriteString(mutedStyle.Render("--"))
				b.WriteString("\n")
			}
			b.WriteString(highlight(chunk))
			if !strings.HasSuffix(chunk, "\n") {
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// highlight renders every [matched]...[/matched] span of chunk. An
// unterminated span is highlighted to the end of the chunk.
func highlight(chunk string) string {
	var b strings.Builder
	for {
		i := strings.Index(chunk, search.MatchOpen)
		if i < 0 {
			b.WriteString(chunk)
			return b.String()
		}
		b.WriteString(chunk[:i])
		chunk = chunk[i+len(search.MatchOpen):]

		j := strings.Index(chunk, search.MatchClose)
		if j < 0 {
			b.WriteString(highlightStyle.Render(chunk))
			return b.String()
		}
		b.WriteString(highlightStyle.Render(chunk[:j]))
		chunk = chunk[j+len(search.MatchClose):]
	}
}
