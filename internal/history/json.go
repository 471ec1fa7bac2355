// json.go implements the JSON file history backend.
//
// The file holds one JSON array of entries. Each Record reads the whole
// file, appends, and rewrites it through a temporary file and rename. This
// is not a true append: cost grows with the history size.

package history

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/search"
)

// JSONFile stores history in a single JSON file.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

// OpenJSON returns a JSONFile at path, creating parent directories.
// The file itself is created on first Record.
func OpenJSON(path string) (*JSONFile, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fault.IO(fault.CodeCreateDir, "create dir", filepath.Dir(path), err)
	}
	return &JSONFile{path: path}, nil
}

// Path returns the backing file.
func (j *JSONFile) Path() string { return j.path }

func (j *JSONFile) Record(ctx context.Context, pattern string, results []search.Results) error {
	if len(results) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, err := j.read()
	if err != nil {
		return err
	}
	entries = append(entries, Entries(pattern, results, Now())...)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fault.Backend("encode history", err)
	}
	if err := book.WriteFile(j.path, data); err != nil {
		return fault.Backend("write history "+j.path, err)
	}
	return nil
}

func (j *JSONFile) ReadAll(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.read()
}

func (j *JSONFile) Close() error { return nil }

func (j *JSONFile) read() ([]Entry, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fault.Backend("read history "+j.path, err)
	}
	if len(data) == 0 {
		return []Entry{}, nil
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fault.InvalidData(fault.CodeInvalidData, "invalid history", j.path, string(data), err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
