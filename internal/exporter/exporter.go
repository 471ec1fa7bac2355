// Package exporter writes books back to the filesystem as plain-text files.
package exporter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jpl-au/bookrab/internal/progress"
	"github.com/jpl-au/bookrab/internal/service"
	"github.com/jpl-au/bookrab/internal/tag"
)

// Options configures an export operation.
type Options struct {
	Include tag.Query // Books must pass this filter
	Exclude tag.Query // Books matching this filter are skipped
	Force   bool      // Overwrite existing files
}

// Result contains the outcome of an export operation.
type Result struct {
	Exported int      `json:"exported"`
	Paths    []string `json:"paths"`
}

// Run exports every book passing the tag filter into dst as <title>.txt.
// Uses os.Root for safe path traversal within the destination directory.
func Run(ctx context.Context, w io.Writer, svc service.Service, dst string, opts Options) (Result, error) {
	var result Result

	docs, err := svc.ListByTags(ctx, opts.Include, opts.Exclude)
	if err != nil {
		return result, err
	}

	if len(docs) == 0 {
		return result, fmt.Errorf("no books to export")
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return result, fmt.Errorf("creating destination directory: %w", err)
	}

	root, err := os.OpenRoot(dst)
	if err != nil {
		return result, fmt.Errorf("opening destination root: %w", err)
	}
	defer root.Close()

	prog := progress.New("Exporting", len(docs))
	defer prog.Done()

	for _, d := range docs {
		text, err := svc.Text(ctx, d.Title)
		if err != nil {
			return result, fmt.Errorf("reading %s: %w", d.Title, err)
		}

		name := d.Title + ".txt"
		if err := writeFileInRoot(root, name, text, opts.Force); err != nil {
			return result, err
		}

		prog.Increment()
		prog.Print()
		outPath := filepath.Join(dst, name)
		result.Paths = append(result.Paths, outPath)
		result.Exported++
		fmt.Fprintf(w, "Exported: %s -> %s\n", d.Title, outPath)
	}

	return result, nil
}

// writeFileInRoot writes content to a file within an os.Root.
func writeFileInRoot(root *os.Root, name, content string, force bool) error {
	if !force {
		if _, err := root.Stat(name); err == nil {
			return fmt.Errorf("file exists: %s (use --force to overwrite)", name)
		}
	}

	f, err := root.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", name, err)
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}
