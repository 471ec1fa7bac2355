package document_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/document"
	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/service"
	"github.com/jpl-au/bookrab/internal/tag"
)

// setupService creates a service over a temp book root with the given
// history backends.
func setupService(t *testing.T, backends string) (*document.Service, *config.Config) {
	t.Helper()
	t.Setenv(config.EnvDir, "")
	dir := t.TempDir()

	cfg := &config.Config{BookPath: filepath.Join(dir, "books")}
	cfg.History.JSONPath = filepath.Join(dir, "history.json")
	cfg.History.SQLitePath = filepath.Join(dir, "db", "history.db")
	require.NoError(t, cfg.Set("history.backends", backends))

	svc, err := document.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc, cfg
}

func TestService_UploadListSearch(t *testing.T) {
	svc, _ := setupService(t, "json")
	ctx := context.Background()

	require.NoError(t, svc.Upload(ctx, "b", "one\ntwo\n", []string{"x"}))
	require.NoError(t, svc.Upload(ctx, "a", "two\nthree\n", []string{"y", "x"}))

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].Title)
	assert.Equal(t, []string{"y", "x"}, docs[0].Tags)

	res, err := svc.SearchByTags(ctx, tag.Query{Mode: tag.All, Tags: []string{"x"}}, tag.Query{}, search.Query{Pattern: "two"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].Title)
	assert.Equal(t, []string{"[matched]two[/matched]\n"}, res[0].Results)

	entries, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestService_ForeignBookDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("backslash is a path separator on windows")
	}
	svc, cfg := setupService(t, "json")
	ctx := context.Background()
	require.NoError(t, svc.Upload(ctx, "good", "line one\n", []string{"x"}))

	// Created by another tool: a title upload would refuse.
	foreign := filepath.Join(cfg.Books(), `Vol 1\2`)
	require.NoError(t, os.MkdirAll(foreign, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(foreign, "txt"), []byte("line two\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(foreign, "tags.json"), []byte(`["x"]`), 0o644))

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	res, err := svc.SearchByTags(ctx, tag.Query{}, tag.Query{}, search.Query{Pattern: "line"})
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, `Vol 1\2`, res[0].Title)
	assert.Equal(t, []string{"[matched]line[/matched] two\n"}, res[0].Results)

	one, err := svc.Search(ctx, `Vol 1\2`, search.Query{Pattern: "two"})
	require.NoError(t, err)
	assert.Len(t, one.Results, 1)

	assert.Error(t, svc.Upload(ctx, `Vol 1\2`, "x\n", nil))
}

func TestService_UploadTooLarge(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{BookPath: dir}
	require.NoError(t, cfg.Set("history.backends", ""))
	require.NoError(t, cfg.Set("limits.max_upload", "4"))
	svc, err := document.New(context.Background(), cfg)
	require.NoError(t, err)
	defer svc.Close()

	err = svc.Upload(context.Background(), "big", "12345", nil)
	assert.ErrorIs(t, err, fault.ErrInput)
	assert.NoError(t, svc.Upload(context.Background(), "small", "1234", nil))
}

func TestService_Diff(t *testing.T) {
	svc, _ := setupService(t, "json")
	ctx := context.Background()

	r, err := svc.Diff(ctx, "new", "hello\n")
	require.NoError(t, err)
	assert.Equal(t, 1, r.Added)

	require.NoError(t, svc.Upload(ctx, "new", "hello\n", nil))
	r, err = svc.Diff(ctx, "new", "hello\n")
	require.NoError(t, err)
	assert.False(t, r.Changed())
}

func TestOpenHistory(t *testing.T) {
	tests := []struct {
		backends string
		check    func(t *testing.T, s history.Store)
	}{
		{"", func(t *testing.T, s history.Store) { assert.IsType(t, history.Nop{}, s) }},
		{"json", func(t *testing.T, s history.Store) { assert.IsType(t, &history.JSONFile{}, s) }},
		{"json,sqlite", func(t *testing.T, s history.Store) {
			m, ok := s.(history.Multi)
			require.True(t, ok)
			assert.Len(t, m, 2)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.backends, func(t *testing.T) {
			dir := t.TempDir()
			cfg := &config.Config{}
			cfg.History.JSONPath = filepath.Join(dir, "h.json")
			cfg.History.SQLitePath = filepath.Join(dir, "h.db")
			b := tt.backends
			cfg.History.Backends = &b

			s, err := document.OpenHistory(context.Background(), cfg)
			require.NoError(t, err)
			defer s.Close()
			tt.check(t, s)
		})
	}
}

func TestService_MirroredHistory(t *testing.T) {
	prev := history.Now
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	history.Now = func() time.Time { return fixed }
	defer func() { history.Now = prev }()

	svc, cfg := setupService(t, "sqlite,json")
	ctx := context.Background()

	require.NoError(t, svc.Upload(ctx, "a", "hello\n", nil))
	_, err := svc.Search(ctx, "a", search.Query{Pattern: "hell"})
	require.NoError(t, err)

	// The JSON file mirrors the SQLite store.
	j, err := history.OpenJSON(cfg.JSONHistoryPath())
	require.NoError(t, err)
	fromJSON, err := j.ReadAll(ctx)
	require.NoError(t, err)
	fromSQL, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, fromSQL, fromJSON)
}

type recordingExt struct {
	events []extension.Event
}

func (r *recordingExt) Name() string                  { return "test-recording" }
func (r *recordingExt) Commands() []*cobra.Command    { return nil }
func (r *recordingExt) MCPTools() []extension.MCPTool { return nil }
func (r *recordingExt) HandleEvent(_ extension.Context, e extension.Event) error {
	r.events = append(r.events, e)
	return nil
}

func TestService_Events(t *testing.T) {
	rec := &recordingExt{}
	extension.Register(rec)

	svc, cfg := setupService(t, "json")
	svc.SetExtensionContext(extension.NewContext(svc, cfg))
	ctx := context.Background()

	require.NoError(t, svc.Upload(ctx, "a", "x\n", []string{"t"}))
	require.NoError(t, svc.Upload(ctx, "a", "xx\n", []string{"t"}))
	_, err := svc.Search(ctx, "a", search.Query{Pattern: "x"})
	require.NoError(t, err)

	require.Len(t, rec.events, 3)
	up := rec.events[0].(extension.BookUploadEvent)
	assert.False(t, up.Replaced)
	assert.True(t, rec.events[1].(extension.BookUploadEvent).Replaced)
	done := rec.events[2].(extension.SearchCompleteEvent)
	assert.Equal(t, "a", done.EventTitle())
	assert.Equal(t, 1, done.Chunks)
}

var _ service.Service = (*document.Service)(nil)
