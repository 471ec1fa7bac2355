// Package repo provides workspace initialisation and discovery for bookrab.
//
// A bookrab workspace is a .bookrab directory holding a local config.yaml,
// the books/ root and the history files. This package handles:
//   - Initialising new workspaces (creating .bookrab/, books/ and config)
//   - Discovering an existing workspace by walking up the directory tree
//   - Controlling git visibility via .gitignore
//
// The discovery algorithm mirrors git's approach: starting from the current
// directory, walk up until a .bookrab directory containing config.yaml is
// found, or the filesystem root is reached. The user-wide ~/.bookrab is
// global configuration, never a workspace.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Dir is the directory name for a bookrab workspace.
	Dir = ".bookrab"
	// ConfigFile marks a directory as a workspace.
	ConfigFile = "config.yaml"
	// BooksDir is the default book root inside a workspace.
	BooksDir = "books"
)

// ErrNotInitialised is returned when no workspace is found.
var ErrNotInitialised = errors.New("bookrab workspace not found (run 'bookrab init')")

// Init creates a workspace in dir (current directory if empty).
//
// The local config.yaml is written empty so every key falls back to its
// workspace-relative default. With private set, books/ is added to the
// workspace .gitignore so the texts are not committed.
func Init(force bool, dir string, private bool) (string, error) {
	if dir == "" {
		dir = "."
	}
	wsDir := filepath.Join(dir, Dir)
	cfgPath := filepath.Join(wsDir, ConfigFile)

	if _, err := os.Stat(cfgPath); err == nil && !force {
		return "", fmt.Errorf("workspace %s already exists (use --force to reinitialise)", wsDir)
	}

	if err := os.MkdirAll(filepath.Join(wsDir, BooksDir), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) || force {
		s := "# bookrab workspace config. See 'bookrab config' for keys.\n"
		if err := os.WriteFile(cfgPath, []byte(s), 0644); err != nil {
			return "", fmt.Errorf("write config: %w", err)
		}
	}

	// Create .gitignore only on first init so custom entries survive --force.
	gitignore := filepath.Join(wsDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# bookrab - search history is per user
history.json
history.db
history.db-wal
history.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return "", fmt.Errorf("write gitignore: %w", err)
		}
	}

	if private {
		if err := Ignore(BooksDir+"/", wsDir); err != nil {
			return "", fmt.Errorf("ignore books: %w", err)
		}
	}

	abs, err := filepath.Abs(wsDir)
	if err != nil {
		return wsDir, nil
	}
	return abs, nil
}

// Discover walks up from the working directory looking for a workspace.
// Returns the absolute path of the .bookrab directory.
func Discover() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return DiscoverFrom(dir)
}

// DiscoverFrom is Discover starting at dir.
func DiscoverFrom(dir string) (string, error) {
	global := globalDir()
	for {
		ws := filepath.Join(dir, Dir)
		if ws != global {
			if info, err := os.Stat(filepath.Join(ws, ConfigFile)); err == nil && info.Mode().IsRegular() {
				return ws, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

func globalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, Dir)
}
