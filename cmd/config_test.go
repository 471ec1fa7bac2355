package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("get single key after set", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config", "search.workers", "4")
		env.contains(out, "(local)")

		out = env.run("config", "search.workers")
		env.equals(out, "4")
	})

	t.Run("get all shows defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "book_path")
		env.contains(out, "history.backends: json")
		env.contains(out, "server.addr: :8080")
	})

	t.Run("set keys are marked", func(t *testing.T) {
		env := newTestEnv(t)
		env.run("config", "search.smart_case", "true")

		out := env.run("config")
		env.contains(out, "* search.smart_case: true")
	})

	t.Run("global without workspace", func(t *testing.T) {
		env := newBareEnv(t)

		out := env.run("config", "limits.max_title", "64")
		env.contains(out, "(global)")
		assert.FileExists(t, filepath.Join(env.home, ".bookrab", "config.yaml"))
	})
}

func TestConfig_Set(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"backends", "history.backends", "json,sqlite"},
		{"smart case", "search.smart_case", "true"},
		{"max upload", "limits.max_upload", "1024"},
		{"addr", "server.addr", "127.0.0.1:9000"},
		{"log level", "log.level", "debug"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			env.run("config", tc.key, tc.value)

			out := env.run("config", tc.key)
			env.equals(out, tc.value)
		})
	}
}

func TestConfig_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"invalid key", "invalid.key", "value"},
		{"invalid bool", "search.smart_case", "maybe"},
		{"unknown backend", "history.backends", "redis"},
		{"negative workers", "search.workers", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.runErr("config", tc.key, tc.value)
			assert.Error(t, err)
		})
	}
}

func TestConfig_LegacyTOML(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("user config dir follows XDG_CONFIG_HOME only on linux")
	}
	env := newBareEnv(t)
	dir := filepath.Join(env.home, ".config", "bookrab")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[search]\nsmart_case = true\n"), 0o644))

	out := env.run("config", "search.smart_case")
	env.equals(out, "true")
}
