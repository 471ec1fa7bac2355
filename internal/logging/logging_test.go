package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/bookrab/internal/config"
)

func TestInitWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	Init(Config{Dir: dir, Format: "json", Level: "debug", MaxSizeMB: 1})
	defer Shutdown()

	ForComponent(CompHTTP).Debug("request", "path", "/list")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	line := strings.TrimSpace(strings.SplitN(string(data), "\n", 2)[0])

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "request", rec["msg"])
	assert.Equal(t, "http", rec["component"])
	assert.Equal(t, "/list", rec["path"])
}

func TestLevelFilters(t *testing.T) {
	dir := t.TempDir()
	Init(Config{Dir: dir, Level: "warn"})
	defer Shutdown()

	Logger().Info("hidden")
	Logger().Warn("shown")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestComponentLoggerBeforeInit(t *testing.T) {
	Shutdown()
	l := ForComponent(CompWatch)
	l.Info("dropped")

	dir := t.TempDir()
	Init(Config{Dir: dir})
	defer Shutdown()
	l.Info("kept")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
	assert.Contains(t, string(data), "component=watch")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestFromConfig(t *testing.T) {
	c := &config.Config{}
	require.NoError(t, c.Set("log.format", "json"))
	require.NoError(t, c.Set("log.dir", "/var/log/bookrab"))

	got := FromConfig(c)
	assert.Equal(t, "json", got.Format)
	assert.Equal(t, "/var/log/bookrab", got.Dir)
	assert.Equal(t, config.DefaultLogMaxSizeMB, got.MaxSizeMB)
	assert.False(t, got.Stderr)
}
