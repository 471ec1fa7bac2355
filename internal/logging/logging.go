// Package logging configures the operational slog logger used by the
// long-running front-ends (serve, mcp, tui).
//
// Audit records of what users did live in internal/log. This package is for
// diagnostics: request timing, watcher events, backend failures. Output goes
// to a rotating file under log.dir, to stderr when requested, or nowhere.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jpl-au/bookrab/internal/config"
)

// Component names used with ForComponent.
const (
	CompHTTP    = "http"
	CompMCP     = "mcp"
	CompTUI     = "tui"
	CompWatch   = "watch"
	CompHistory = "history"
)

// FileName is the log file created inside Config.Dir.
const FileName = "bookrab.log"

// Config holds logging configuration.
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Dir        string // rotating file directory; empty disables the file sink
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool

	// Stderr also writes to stderr. serve sets this when Dir is empty.
	Stderr bool
}

// FromConfig builds a Config from the log.* keys.
func FromConfig(c *config.Config) Config {
	return Config{
		Level:      c.LogLevel(),
		Format:     c.LogFormat(),
		Dir:        c.Log.Dir,
		MaxSizeMB:  c.LogMaxSizeMB(),
		MaxBackups: c.LogMaxBackups(),
		MaxAgeDays: c.LogMaxAgeDays(),
		Compress:   c.LogCompress(),
	}
}

var (
	globalLogger *slog.Logger
	globalMu     sync.RWMutex
	rotator      *lumberjack.Logger
)

// Init replaces the global logger. Calling it again closes the previous file.
func Init(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if rotator != nil {
		rotator.Close()
		rotator = nil
	}

	var writers []io.Writer
	if cfg.Dir != "" {
		rotator = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, FileName),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, rotator)
	}
	if cfg.Stderr {
		writers = append(writers, os.Stderr)
	}

	w := io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	globalLogger = slog.New(h)
}

// ParseLevel maps a level name onto slog, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Logger returns the global logger. Safe to call before Init (discards).
func Logger() *slog.Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return globalLogger
}

// ForComponent returns a logger tagged with component. It resolves the
// global handler at log time, so package-level loggers created before Init
// still reach the configured sink.
func ForComponent(name string) *slog.Logger {
	return slog.New(&dynamicHandler{component: name})
}

type dynamicHandler struct {
	component string
	attrs     []slog.Attr
	group     string
}

func (h *dynamicHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return Logger().Handler().Enabled(ctx, level)
}

func (h *dynamicHandler) Handle(ctx context.Context, r slog.Record) error {
	handler := Logger().Handler().WithAttrs([]slog.Attr{slog.String("component", h.component)})
	if len(h.attrs) > 0 {
		handler = handler.WithAttrs(h.attrs)
	}
	if h.group != "" {
		handler = handler.WithGroup(h.group)
	}
	return handler.Handle(ctx, r)
}

func (h *dynamicHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &dynamicHandler{component: h.component, attrs: merged, group: h.group}
}

func (h *dynamicHandler) WithGroup(name string) slog.Handler {
	return &dynamicHandler{component: h.component, attrs: h.attrs, group: name}
}

// Shutdown closes the rotating file and resets to the discard logger.
func Shutdown() {
	globalMu.Lock()
	defer globalMu.Unlock()
	if rotator != nil {
		rotator.Close()
		rotator = nil
	}
	globalLogger = nil
}
