// tags.go implements the tag picker panel.
//
// Every tag is neutral, included or excluded; space cycles through the
// three. "/" opens a fuzzy filter over tag names so long tag lists stay
// navigable. Selection state survives reloads for tags that still exist.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/jpl-au/bookrab/internal/tag"
)

// tagState is a tag's role in the filter.
type tagState int

const (
	tagNeutral tagState = iota
	tagInclude
	tagExclude
)

func (s tagState) next() tagState { return (s + 1) % 3 }

// tagSource implements fuzzy.Source over tag names.
type tagSource []string

func (s tagSource) String(i int) string { return s[i] }
func (s tagSource) Len() int            { return len(s) }

type tagPanel struct {
	tags      []string
	state     map[string]tagState
	visible   []int // indexes into tags after filtering
	cursor    int
	filter    textinput.Model
	filtering bool

	includeMode tag.Mode
	excludeMode tag.Mode
}

func newTagPanel() tagPanel {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter tags"
	ti.CharLimit = 64
	ti.Width = 24
	return tagPanel{state: map[string]tagState{}, filter: ti}
}

// setTags replaces the tag list, keeping the state of surviving tags.
func (p *tagPanel) setTags(tags []string) {
	p.tags = tags
	kept := make(map[string]tagState, len(p.state))
	for _, t := range tags {
		if s, ok := p.state[t]; ok {
			kept[t] = s
		}
	}
	p.state = kept
	p.refilter()
}

// refilter recomputes the visible tags from the filter text. Matches are
// ordered by fuzzy score.
func (p *tagPanel) refilter() {
	q := p.filter.Value()
	p.visible = p.visible[:0]
	if q == "" {
		for i := range p.tags {
			p.visible = append(p.visible, i)
		}
	} else {
		for _, m := range fuzzy.FindFrom(q, tagSource(p.tags)) {
			p.visible = append(p.visible, m.Index)
		}
	}
	if p.cursor >= len(p.visible) {
		p.cursor = max(len(p.visible)-1, 0)
	}
}

func (p *tagPanel) current() (string, bool) {
	if len(p.visible) == 0 {
		return "", false
	}
	return p.tags[p.visible[p.cursor]], true
}

func (p *tagPanel) up() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *tagPanel) down() {
	if p.cursor < len(p.visible)-1 {
		p.cursor++
	}
}

// cycle moves the tag under the cursor to its next state.
func (p *tagPanel) cycle() {
	t, ok := p.current()
	if !ok {
		return
	}
	s := p.state[t].next()
	if s == tagNeutral {
		delete(p.state, t)
		return
	}
	p.state[t] = s
}

func (p *tagPanel) startFilter() tea.Cmd {
	p.filtering = true
	return p.filter.Focus()
}

// stopFilter leaves filter mode. clear also drops the filter text.
func (p *tagPanel) stopFilter(clear bool) {
	p.filtering = false
	p.filter.Blur()
	if clear {
		p.filter.SetValue("")
		p.refilter()
	}
}

func (p *tagPanel) updateFilter(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refilter()
	return cmd
}

func toggleMode(m tag.Mode) tag.Mode {
	if m == tag.All {
		return tag.Any
	}
	return tag.All
}

// queries returns the include and exclude queries in tag order.
func (p *tagPanel) queries() (include, exclude tag.Query) {
	include.Mode, exclude.Mode = p.includeMode, p.excludeMode
	for _, t := range p.tags {
		switch p.state[t] {
		case tagInclude:
			include.Tags = append(include.Tags, t)
		case tagExclude:
			exclude.Tags = append(exclude.Tags, t)
		}
	}
	return include, exclude
}

func (p *tagPanel) view(height int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n",
		includeStyle.Render("+"+p.includeMode.String()),
		excludeStyle.Render("-"+p.excludeMode.String()))
	if p.filtering || p.filter.Value() != "" {
		b.WriteString(p.filter.View())
		b.WriteString("\n")
	}
	if len(p.visible) == 0 {
		b.WriteString(mutedStyle.Render("no tags"))
		return b.String()
	}

	start := 0
	if height > 0 && p.cursor >= height {
		start = p.cursor - height + 1
	}
	for i := start; i < len(p.visible) && (height <= 0 || i < start+height); i++ {
		t := p.tags[p.visible[i]]
		line := "  " + t
		switch p.state[t] {
		case tagInclude:
			line = includeStyle.Render("+ " + t)
		case tagExclude:
			line = excludeStyle.Render("- " + t)
		}
		if i == p.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
