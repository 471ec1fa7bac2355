// Package log provides centralised audit logging for bookrab operations.
// Logs are stored in ~/.bookrab/log/bookrab-log.db and track CLI commands,
// REST requests and MCP tool invocations across book roots.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("book:upload", "write").
//		Path(title).
//		Detail("tags", tags).
//		Write(err)
//
//	log.Event("search:search", "search").
//		Path(title).
//		Detail("pattern", pattern).
//		Detail("chunks", len(res.Results)).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}" for CLI
// commands, "mcp:{tool}" for MCP tools and "api:{route}" for REST handlers.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jpl-au/bookrab/internal/store"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "book:upload", "mcp:book_search"
	Action string // verb: read, write, list, search
	Path   string // input: book title, when the operation targets one

	// Timing, in unix milliseconds
	Start int64 // when Event() was called
	End   int64 // when Write() was called

	Success bool           // whether operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional operation-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
//
// The source identifies where the operation originated:
//   - CLI commands: "{extension}:{command}" (e.g., "book:ls", "search:search")
//   - MCP tools: "mcp:{tool}" (e.g., "mcp:book_search")
//   - REST: "api:{route}" (e.g., "api:upload")
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().UnixMilli(),
		},
	}
}

// Path sets the book title this operation affects.
// Leave unset for operations that don't target one book (list, config).
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for operation-specific data that doesn't fit standard fields:
// patterns, tag filters, result counts.
// Can be called multiple times to add multiple details.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// Example:
//
//	res, err := svc.Search(ctx, title, q)
//	log.Event("search:search", "search").Path(title).Write(err)
//	if err != nil {
//		return err
//	}
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().UnixMilli()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	// Concurrent CLI invocations share the file.
	db, err := sql.Open("sqlite", store.DSN(p, "busy_timeout(5000)"))
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetProject sets the project identifier for subsequent log entries.
// The dir should be the absolute path to the book root.
func SetProject(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.project = hash(dir)
	}
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Recent returns up to limit entries for the current project, newest first.
// Returns nil when the logger is not open.
func Recent(limit int) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, nil
	}
	return l.recent(limit)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
