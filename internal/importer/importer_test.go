package importer_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/document"
	"github.com/jpl-au/bookrab/internal/importer"
)

func newService(t *testing.T) *document.Service {
	t.Helper()
	t.Setenv(config.EnvDir, "")
	dir := t.TempDir()
	cfg := &config.Config{BookPath: filepath.Join(dir, "books")}
	cfg.History.JSONPath = filepath.Join(dir, "history.json")
	require.NoError(t, cfg.Set("history.backends", "json"))
	svc, err := document.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	}
	return dir
}

func TestRun(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	src := writeTree(t, map[string]string{
		"Odes.txt":            "ode\n",
		"poems/Mensagem.TXT":  "mar portuguez\n",
		"poems/notes.md":      "ignored\n",
		".hidden/Secret.txt":  "hidden\n",
		"prose/novel/Ana.txt": "capitulo\n",
	})

	var out bytes.Buffer
	res, err := importer.Run(ctx, &out, svc, src, importer.Options{Tags: []string{"pt"}, DirTags: true})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)
	assert.ElementsMatch(t, []string{"Odes", "Mensagem", "Ana"}, res.Titles)
	assert.Contains(t, out.String(), "Imported: ")

	doc, err := svc.Get(ctx, "Ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"novel", "prose", "pt"}, doc.Tags)

	doc, err = svc.Get(ctx, "Odes")
	require.NoError(t, err)
	assert.Equal(t, []string{"pt"}, doc.Tags)

	text, err := svc.Text(ctx, "Mensagem")
	require.NoError(t, err)
	assert.Equal(t, "mar portuguez\n", text)

	_, err = svc.Get(ctx, "Secret")
	assert.Error(t, err)
}

func TestRun_DryRun(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	src := writeTree(t, map[string]string{"a.txt": "x\n"})

	var out bytes.Buffer
	res, err := importer.Run(ctx, &out, svc, src, importer.Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, []string{"a"}, res.Titles)
	assert.Contains(t, out.String(), "Would import:")

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestRun_DuplicateTitle(t *testing.T) {
	svc := newService(t)
	src := writeTree(t, map[string]string{"a/x.txt": "1\n", "b/x.txt": "2\n"})

	_, err := importer.Run(context.Background(), &bytes.Buffer{}, svc, src, importer.Options{DryRun: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `title "x"`)
}

func TestRun_NotDirectory(t *testing.T) {
	svc := newService(t)
	src := writeTree(t, map[string]string{"a.txt": "x\n"})

	_, err := importer.Run(context.Background(), &bytes.Buffer{}, svc, filepath.Join(src, "a.txt"), importer.Options{})
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Os Lusiadas", importer.Title(filepath.Join("dir", "Os Lusiadas.txt")))
	assert.Equal(t, "plain", importer.Title("plain"))
}
