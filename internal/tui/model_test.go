package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/tag"
)

type fakeLibrary struct {
	books []book.Document
	tags  []string

	title   string
	include tag.Query
	exclude tag.Query
	query   search.Query
	byTags  bool
	err     error
}

func (f *fakeLibrary) List(context.Context) ([]book.Document, error) { return f.books, nil }
func (f *fakeLibrary) Tags(context.Context) ([]string, error)         { return f.tags, nil }

func (f *fakeLibrary) Search(_ context.Context, title string, q search.Query) (search.Results, error) {
	f.title, f.query = title, q
	if f.err != nil {
		return search.Results{}, f.err
	}
	return search.Results{Title: title, Results: []string{"o [matched]Tejo[/matched] corre\n"}}, nil
}

func (f *fakeLibrary) SearchByTags(_ context.Context, include, exclude tag.Query, q search.Query) ([]search.Results, error) {
	f.byTags, f.include, f.exclude, f.query = true, include, exclude, q
	return []search.Results{{Title: "a", Results: []string{}}}, f.err
}

func newTestModel(t *testing.T) (*Model, *fakeLibrary) {
	t.Helper()
	lib := &fakeLibrary{
		books: []book.Document{{Title: "lusiadas1", Tags: []string{"poem"}}, {Title: "lusiadas2", Tags: []string{"epic"}}},
		tags:  []string{"epic", "poem", "portuguese"},
	}
	m := New(context.Background(), lib, false)
	m.Update(m.load()())
	return m, lib
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(keyRunes(string(r)))
	}
}

// run feeds the command's message back into the model, the way the
// bubbletea runtime would.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func TestInitLoadsBooksAndTags(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Len(t, m.books, 2)
	assert.Equal(t, []string{"epic", "poem", "portuguese"}, m.tags.tags)
	assert.Len(t, m.tags.visible, 3)
}

func TestTagModeSearch(t *testing.T) {
	m, lib := newTestModel(t)
	typeText(m, "Tejo")

	// Move to the tag panel: pattern -> before -> after -> tags.
	for range 3 {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	require.Equal(t, focusTags, m.focus)

	m.Update(tea.KeyMsg{Type: tea.KeySpace}) // epic: include
	m.Update(keyRunes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace}) // poem: include
	m.Update(tea.KeyMsg{Type: tea.KeySpace}) // poem: exclude
	m.Update(keyRunes("m"))                  // include mode: all

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	assert.True(t, lib.byTags)
	assert.Equal(t, "Tejo", lib.query.Pattern)
	assert.Equal(t, tag.Query{Mode: tag.All, Tags: []string{"epic"}}, lib.include)
	assert.Equal(t, tag.Query{Mode: tag.Any, Tags: []string{"poem"}}, lib.exclude)
	assert.False(t, m.searching)
	assert.Contains(t, m.status, "1 books")
}

func TestTitleModeSearchWithContext(t *testing.T) {
	m, lib := newTestModel(t)
	typeText(m, "Tejo")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "2")
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "1")

	m.Update(tea.KeyMsg{Type: tea.KeyTab}) // tags
	m.Update(tea.KeyMsg{Type: tea.KeyTab}) // books
	m.Update(keyRunes("j"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Equal(t, "lusiadas2", m.selected)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i"), Alt: true})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)

	assert.False(t, lib.byTags)
	assert.Equal(t, "lusiadas2", lib.title)
	assert.Equal(t, search.Query{Pattern: "Tejo", IgnoreCase: true, Before: 2, After: 1}, lib.query)
	assert.Contains(t, m.results.View(), "Tejo")
	assert.NotContains(t, m.results.View(), search.MatchOpen)
}

func TestSelectingSameBookTwiceReturnsToTagMode(t *testing.T) {
	m, _ := newTestModel(t)
	m.setFocus(focusBooks)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, "lusiadas1", m.selected)
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Empty(t, m.selected)
}

func TestEmptyPatternDoesNotSearch(t *testing.T) {
	m, lib := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Error(t, m.err)
	assert.False(t, lib.byTags)
}

func TestSearchErrorIsShown(t *testing.T) {
	m, lib := newTestModel(t)
	lib.err = errors.New("boom")
	typeText(m, "x")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, m, cmd)
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "boom")
}

func TestNonNumericContextIsAnError(t *testing.T) {
	m, lib := newTestModel(t)
	typeText(m, "x")
	m.setFocus(focusAfter)
	typeText(m, "a")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "after")
	assert.False(t, lib.byTags)
}

func TestContextSize(t *testing.T) {
	n, err := contextSize("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = contextSize(" 4 ")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	_, err = contextSize("-1")
	assert.Error(t, err)
}

func TestReloadDropsVanishedSelection(t *testing.T) {
	m, lib := newTestModel(t)
	m.selected = "lusiadas2"
	lib.books = lib.books[:1]
	_, cmd := m.Update(ReloadMsg{})
	run(t, m, cmd)
	assert.Empty(t, m.selected)
	assert.Len(t, m.books, 1)
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestViewRendersPanels(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	v := m.View()
	for _, want := range []string{"Search", "Tags", "Books", "Results (tags)", "lusiadas1", "portuguese"} {
		assert.True(t, strings.Contains(v, want), "view missing %q", want)
	}
}
