package tui

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsNewBooks(t *testing.T) {
	root := t.TempDir()
	var calls atomic.Int32
	w, err := NewWatcher(root, func() { calls.Add(1) })
	require.NoError(t, err)
	w.debounce = 20 * time.Millisecond
	require.NoError(t, w.Start())
	t.Cleanup(func() { _ = w.Stop() })

	dir := filepath.Join(root, "lusiadas1")
	require.NoError(t, os.Mkdir(dir, 0o755))
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// Files inside a book created after Start are seen too.
	before := calls.Load()
	time.Sleep(50 * time.Millisecond) // let the directory watch attach
	require.NoError(t, os.WriteFile(filepath.Join(dir, "txt"), []byte("x\n"), 0o644))
	assert.Eventually(t, func() bool { return calls.Load() > before }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), func() {})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
