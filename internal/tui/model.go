// Package tui implements the interactive terminal front-end.
//
// The screen has a query bar (pattern, before and after context), a tag
// panel, a book panel and a results viewport. With a book selected in the
// book panel, enter searches that book; otherwise it searches every book
// passing the tag panel's filter. Results and history are produced by the
// same service as the CLI.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/tag"
)

// Library is the part of the book service the TUI needs.
type Library interface {
	List(ctx context.Context) ([]book.Document, error)
	Tags(ctx context.Context) ([]string, error)
	Search(ctx context.Context, title string, q search.Query) (search.Results, error)
	SearchByTags(ctx context.Context, include, exclude tag.Query, q search.Query) ([]search.Results, error)
}

type focus int

const (
	focusPattern focus = iota
	focusBefore
	focusAfter
	focusTags
	focusBooks
	focusResults
	focusCount
)

const sidePanelWidth = 28

// ReloadMsg asks the model to re-read the book and tag lists.
type ReloadMsg struct{}

type loadedMsg struct {
	books []book.Document
	tags  []string
	err   error
}

type searchDoneMsg struct {
	results []search.Results
	err     error
}

// Model is the bubbletea model for "bookrab tui".
type Model struct {
	ctx  context.Context
	lib  Library
	keys keyMap
	help help.Model

	pattern textinput.Model
	before  textinput.Model
	after   textinput.Model
	focus   focus

	ignoreCase bool
	smartCase  bool

	tags     tagPanel
	books    []book.Document
	bookCur  int
	selected string // searched book in title mode; empty means tag mode

	results   viewport.Model
	searching bool
	status    string
	err       error

	width  int
	height int
}

// New returns a model over lib. smartCase is the initial smart-case toggle.
func New(ctx context.Context, lib Library, smartCase bool) *Model {
	pattern := textinput.New()
	pattern.Placeholder = "regex pattern"
	pattern.Prompt = "pattern: "
	pattern.CharLimit = 512
	pattern.Width = 40
	pattern.Focus()

	before := newNumberInput("before: ")
	after := newNumberInput("after: ")

	return &Model{
		ctx:       ctx,
		lib:       lib,
		keys:      defaultKeys(),
		help:      help.New(),
		pattern:   pattern,
		before:    before,
		after:     after,
		smartCase: smartCase,
		tags:      newTagPanel(),
		results:   viewport.New(80, 20),
	}
}

func newNumberInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "0"
	ti.CharLimit = 4
	ti.Width = 4
	return ti
}

// Init loads the book and tag lists.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load())
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		books, err := m.lib.List(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		tags, err := m.lib.Tags(m.ctx)
		return loadedMsg{books: books, tags: tags, err: err}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case ReloadMsg:
		return m, m.load()

	case loadedMsg:
		m.applyLoad(msg)
		return m, nil

	case searchDoneMsg:
		m.searching = false
		m.err = msg.err
		if msg.err != nil {
			m.status = ""
			return m, nil
		}
		chunks := 0
		for _, r := range msg.results {
			chunks += len(r.Results)
		}
		m.status = fmt.Sprintf("%d chunks in %d books", chunks, len(msg.results))
		m.results.SetContent(renderResults(msg.results))
		m.results.GotoTop()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyLoad(msg loadedMsg) {
	if msg.err != nil {
		m.err = msg.err
		return
	}
	m.books = msg.books
	m.tags.setTags(msg.tags)
	if m.bookCur >= len(m.books) {
		m.bookCur = max(len(m.books)-1, 0)
	}
	if m.selected != "" && !m.hasBook(m.selected) {
		m.selected = ""
	}
}

func (m *Model) hasBook(title string) bool {
	for _, b := range m.books {
		if b.Title == title {
			return true
		}
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// The tag filter owns the keyboard until enter or esc.
	if m.focus == focusTags && m.tags.filtering {
		switch msg.Type {
		case tea.KeyEsc:
			m.tags.stopFilter(true)
			return m, nil
		case tea.KeyEnter:
			m.tags.stopFilter(false)
			return m, nil
		}
		return m, m.tags.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Search):
		return m, m.search()
	case key.Matches(msg, m.keys.IgnoreCase):
		m.ignoreCase = !m.ignoreCase
		return m, nil
	case key.Matches(msg, m.keys.SmartCase):
		m.smartCase = !m.smartCase
		return m, nil
	}

	switch m.focus {
	case focusPattern, focusBefore, focusAfter:
		in := m.input(m.focus)
		var cmd tea.Cmd
		*in, cmd = in.Update(msg)
		return m, cmd

	case focusTags:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.tags.up()
		case key.Matches(msg, m.keys.Down):
			m.tags.down()
		case key.Matches(msg, m.keys.Toggle):
			m.tags.cycle()
		case key.Matches(msg, m.keys.Filter):
			return m, m.tags.startFilter()
		case key.Matches(msg, m.keys.IncludeMode):
			m.tags.includeMode = toggleMode(m.tags.includeMode)
		case key.Matches(msg, m.keys.ExcludeMode):
			m.tags.excludeMode = toggleMode(m.tags.excludeMode)
		}
		return m, nil

	case focusBooks:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.bookCur > 0 {
				m.bookCur--
			}
		case key.Matches(msg, m.keys.Down):
			if m.bookCur < len(m.books)-1 {
				m.bookCur++
			}
		case key.Matches(msg, m.keys.Toggle):
			if len(m.books) > 0 {
				t := m.books[m.bookCur].Title
				if m.selected == t {
					m.selected = ""
				} else {
					m.selected = t
				}
			}
		}
		return m, nil

	case focusResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) input(f focus) *textinput.Model {
	switch f {
	case focusBefore:
		return &m.before
	case focusAfter:
		return &m.after
	default:
		return &m.pattern
	}
}

func (m *Model) setFocus(f focus) tea.Cmd {
	m.pattern.Blur()
	m.before.Blur()
	m.after.Blur()
	m.focus = f
	switch f {
	case focusPattern, focusBefore, focusAfter:
		return m.input(f).Focus()
	}
	return nil
}

// query builds the search query from the inputs and toggles.
func (m *Model) query() (search.Query, error) {
	q := search.Query{
		Pattern:    m.pattern.Value(),
		IgnoreCase: m.ignoreCase,
		SmartCase:  m.smartCase,
	}
	var err error
	if q.Before, err = contextSize(m.before.Value()); err != nil {
		return q, fmt.Errorf("before: %w", err)
	}
	if q.After, err = contextSize(m.after.Value()); err != nil {
		return q, fmt.Errorf("after: %w", err)
	}
	return q, q.Validate()
}

func contextSize(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a non-negative integer", s)
	}
	return n, nil
}

func (m *Model) search() tea.Cmd {
	q, err := m.query()
	if err != nil {
		m.err = err
		return nil
	}
	if q.Pattern == "" {
		m.err = errors.New("pattern is empty")
		return nil
	}
	m.err = nil
	m.searching = true
	m.status = "searching..."

	ctx, lib, title := m.ctx, m.lib, m.selected
	include, exclude := m.tags.queries()
	return func() tea.Msg {
		if title != "" {
			r, err := lib.Search(ctx, title, q)
			if err != nil {
				return searchDoneMsg{err: err}
			}
			return searchDoneMsg{results: []search.Results{r}}
		}
		rs, err := lib.SearchByTags(ctx, include, exclude, q)
		return searchDoneMsg{results: rs, err: err}
	}
}

func (m *Model) resize() {
	w := m.width - sidePanelWidth - 6
	h := m.height - 8
	m.results.Width = max(w, 20)
	m.results.Height = max(h, 5)
}

// View renders the screen.
func (m *Model) View() string {
	flags := fmt.Sprintf("[%s] ignore-case  [%s] smart-case", check(m.ignoreCase), check(m.smartCase))
	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		m.pattern.View(), "  ", m.before.View(), "  ", m.after.View(), "  ", mutedStyle.Render(flags))

	side := lipgloss.JoinVertical(lipgloss.Left,
		m.panel(focusTags, "Tags", m.tags.view(m.listHeight())),
		m.panel(focusBooks, "Books", m.booksView()),
	)

	mode := "tags"
	if m.selected != "" {
		mode = "book: " + m.selected
	}
	results := m.panel(focusResults, "Results ("+mode+")", m.results.View())

	status := m.status
	if m.err != nil {
		status = errorStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.panel(focusPattern, "Search", bar),
		lipgloss.JoinHorizontal(lipgloss.Top, side, results),
		status,
		m.help.ShortHelpView(m.keys.help(m.focus)),
	)
}

func (m *Model) panel(f focus, title, body string) string {
	style := panelStyle
	if m.focus == f || (f == focusPattern && m.focus <= focusAfter) {
		style = focusedPanelStyle
	}
	if f == focusTags || f == focusBooks {
		style = style.Width(sidePanelWidth)
	}
	return style.Render(titleStyle.Render(title) + "\n" + body)
}

func (m *Model) listHeight() int {
	if m.height == 0 {
		return 0
	}
	return max((m.height-12)/2, 3)
}

func (m *Model) booksView() string {
	if len(m.books) == 0 {
		return mutedStyle.Render("no books")
	}
	var b strings.Builder
	for i, doc := range m.books {
		mark := "  "
		if doc.Title == m.selected {
			mark = "* "
		}
		line := mark + doc.Title
		if i == m.bookCur && m.focus == focusBooks {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(m.books)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func check(b bool) string {
	if b {
		return "x"
	}
	return " "
}
