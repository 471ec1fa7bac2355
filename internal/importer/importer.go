// Package importer uploads a directory of plain-text files as books.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/bookrab/internal/progress"
	"github.com/jpl-au/bookrab/internal/service"
	"github.com/jpl-au/bookrab/internal/tag"
)

// Ext is the file extension picked up by an import.
const Ext = ".txt"

// Options configures an import operation.
type Options struct {
	Tags    []string // Tags applied to every imported book
	DirTags bool     // Also tag each book with its parent directory names
	Hidden  bool     // Include hidden files/directories
	DryRun  bool     // Show what would be imported without importing
}

// Result contains the outcome of an import operation.
type Result struct {
	Imported int      `json:"imported"`
	Titles   []string `json:"titles"`
}

// Run executes the import operation.
// Uses os.Root for safe path traversal within the source directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, src string, opts Options) (Result, error) {
	var result Result

	info, err := os.Stat(src)
	if err != nil {
		return result, err
	}

	if !info.IsDir() {
		return result, fmt.Errorf("%s is not a directory", src)
	}

	root, err := os.OpenRoot(src)
	if err != nil {
		return result, fmt.Errorf("opening source root: %w", err)
	}
	defer root.Close()

	files, err := scanRoot(root, "", opts.Hidden)
	if err != nil {
		return result, fmt.Errorf("scanning %s: %w", src, err)
	}

	if len(files) == 0 {
		return result, nil
	}

	prog := progress.New("Importing", len(files))
	defer prog.Done()

	seen := make(map[string]string, len(files))
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		title := Title(rel)
		if prev, ok := seen[title]; ok {
			return result, fmt.Errorf("%s and %s both map to title %q", prev, rel, title)
		}
		seen[title] = rel
		result.Titles = append(result.Titles, title)

		tags := opts.Tags
		if opts.DirTags {
			tags = tag.Union(tags, dirTags(rel))
		}

		if opts.DryRun {
			fmt.Fprintf(w, "Would import: %s -> %s\n", filepath.Join(src, rel), title)
			prog.Increment()
			prog.Print()
			continue
		}

		content, err := readFileInRoot(root, rel)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", rel, err)
		}

		if err := svc.Upload(ctx, title, content, tags); err != nil {
			return result, fmt.Errorf("uploading %s: %w", title, err)
		}

		prog.Increment()
		prog.Print()
		fmt.Fprintf(w, "Imported: %s -> %s\n", filepath.Join(src, rel), title)
		result.Imported++
	}

	return result, nil
}

// scanRoot recursively finds all text files within an os.Root.
// Returns relative paths from the root.
func scanRoot(root *os.Root, dir string, includeHidden bool) ([]string, error) {
	var files []string

	path := dir
	if path == "" {
		path = "."
	}

	f, err := root.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()

		if !includeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		rel := name
		if dir != "" {
			rel = filepath.Join(dir, name)
		}

		if entry.IsDir() {
			subfiles, err := scanRoot(root, rel, includeHidden)
			if err != nil {
				return nil, err
			}
			files = append(files, subfiles...)
		} else if strings.EqualFold(filepath.Ext(name), Ext) {
			files = append(files, rel)
		}
	}

	return files, nil
}

// readFileInRoot reads a file's content within an os.Root.
func readFileInRoot(root *os.Root, name string) (string, error) {
	b, err := root.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Title derives a book title from a path: the base name without its
// extension, surrounding whitespace removed.
func Title(rel string) string {
	base := filepath.Base(rel)
	return strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
}

// dirTags returns the directory components of rel.
func dirTags(rel string) []string {
	dir := filepath.Dir(filepath.ToSlash(rel))
	if dir == "." {
		return nil
	}
	return tag.Parse(strings.ReplaceAll(filepath.ToSlash(dir), "/", ","))
}
