package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/history"
)

func entries() []history.Entry {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return []history.Entry{
		{Title: "a", Pattern: "x", Date: now},
		{Title: "b", Pattern: "y", Date: now},
		{Title: "a", Pattern: "z", Date: now},
	}
}

func TestFilterByTitle(t *testing.T) {
	got := filter(entries(), "a", 0)
	assert.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Pattern)
	assert.Equal(t, "z", got[1].Pattern)
}

func TestFilterLimitKeepsNewest(t *testing.T) {
	got := filter(entries(), "", 2)
	assert.Len(t, got, 2)
	assert.Equal(t, "y", got[0].Pattern)
	assert.Equal(t, "z", got[1].Pattern)
}

func TestFilterNoop(t *testing.T) {
	assert.Len(t, filter(entries(), "", 0), 3)
	assert.Empty(t, filter(entries(), "missing", 0))
}

func TestMCPToolsExposeAudit(t *testing.T) {
	tools := (&Extension{}).MCPTools()
	assert.Len(t, tools, 1)
	assert.Equal(t, "book_audit", tools[0].Tool.Name)
}

func TestHandleEventIgnoresErrors(t *testing.T) {
	e := &Extension{}
	assert.NoError(t, e.HandleEvent(nil, extension.BookUploadEvent{Title: "a", Bytes: 3}))
	assert.NoError(t, e.HandleEvent(nil, extension.SearchCompleteEvent{Pattern: "x"}))
}
