package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs so no
// real config is read.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(EnvDir, "")
	t.Setenv(EnvDatabaseURL, "")
	t.Chdir(work)
	return home, work
}

func TestDefaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, cfg.Scope())
	assert.Equal(t, filepath.Join(home, ".bookrab", "books"), cfg.Books())
	assert.Equal(t, []string{BackendJSON}, cfg.Backends())
	assert.Equal(t, filepath.Join(home, ".bookrab", "history.json"), cfg.JSONHistoryPath())
	assert.Equal(t, DefaultMaxTitle, cfg.MaxTitle())
	assert.Equal(t, DefaultMaxLineLength, cfg.MaxLineLength())
	assert.Equal(t, int64(DefaultMaxUpload), cfg.MaxUpload())
	assert.Equal(t, DefaultAddr, cfg.Addr())
	assert.Zero(t, cfg.RateLimit())
	assert.Zero(t, cfg.Workers())
	assert.False(t, cfg.SmartCase())
}

func TestLocalWinsOverGlobal(t *testing.T) {
	isolate(t)

	global := &Config{}
	require.NoError(t, global.Set("server.addr", ":9000"))
	require.NoError(t, global.SaveScope(ScopeGlobal))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())

	local := &Config{}
	require.NoError(t, local.Set("server.addr", ":9100"))
	require.NoError(t, local.SaveScope(ScopeLocal))

	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLocal, cfg.Scope())
	assert.Equal(t, ":9100", cfg.Addr())
	assert.True(t, strings.HasSuffix(cfg.Books(), filepath.Join(".bookrab", "books")), cfg.Books())
}

func TestLegacyTOML(t *testing.T) {
	home, _ := isolate(t)

	dir := filepath.Join(home, ".config", "bookrab")
	require.NoError(t, os.MkdirAll(dir, 0755))
	data := "book_path = \"/srv/books\"\n\n[history]\nbackends = \"json,sqlite\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(data), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ScopeLegacy, cfg.Scope())
	assert.Equal(t, "/srv/books", cfg.Books())
	assert.Equal(t, []string{BackendJSON, BackendSQLite}, cfg.Backends())

	// Saving migrates to the global YAML file.
	require.NoError(t, cfg.Save())
	assert.FileExists(t, filepath.Join(home, ".bookrab", "config.yaml"))
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDir, "/tmp/elsewhere")
	t.Setenv(EnvDatabaseURL, "postgres://x")

	cfg := &Config{BookPath: "/ignored"}
	cfg.History.DatabaseURL = "postgres://ignored"
	assert.Equal(t, "/tmp/elsewhere", cfg.Books())
	assert.Equal(t, "postgres://x", cfg.DatabaseURL())
}

func TestSetValidation(t *testing.T) {
	cfg := &Config{}

	tests := []struct {
		key, value string
		ok         bool
	}{
		{"history.backends", "json, SQLite ,postgres", true},
		{"history.backends", "redis", false},
		{"search.workers", "4", true},
		{"search.workers", "-1", false},
		{"search.smart_case", "TRUE", true},
		{"search.smart_case", "yes", false},
		{"limits.max_title", "0", false},
		{"limits.max_upload", "1024", true},
		{"server.rate_limit", "2.5", true},
		{"server.rate_limit", "-1", false},
		{"log.format", "json", true},
		{"log.format", "xml", false},
		{"log.level", "debug", true},
		{"nope", "x", false},
	}
	for _, tt := range tests {
		err := cfg.Set(tt.key, tt.value)
		if tt.ok {
			assert.NoError(t, err, "%s=%s", tt.key, tt.value)
		} else {
			assert.Error(t, err, "%s=%s", tt.key, tt.value)
		}
	}

	assert.Equal(t, []string{"json", "sqlite", "postgres"}, cfg.Backends())
	assert.Equal(t, 4, cfg.Workers())
	assert.True(t, cfg.SmartCase())
	assert.Equal(t, 2.5, cfg.RateLimit())
	assert.True(t, cfg.IsSet("log.level"))
	assert.False(t, cfg.IsSet("log.dir"))
}

func TestGetUnknownKey(t *testing.T) {
	_, err := (&Config{}).Get("author.name")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestAllCoversValidKeys(t *testing.T) {
	all := (&Config{}).All()
	for _, k := range ValidKeys() {
		assert.Contains(t, all, k)
		assert.True(t, IsValidKey(k))
	}
}

func TestMalformedYAML(t *testing.T) {
	home, _ := isolate(t)
	dir := filepath.Join(home, ".bookrab")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("limits: [oops"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateBounds(t *testing.T) {
	zero := 0
	cfg := &Config{Limits: Limits{MaxTitle: &zero}}
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidValue)
}
