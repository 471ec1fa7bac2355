// Package book manages the on-disk book collection.
//
// Layout: one directory per book beneath a root, named after the title.
// Each directory holds the raw text in "txt" and a JSON array of tags in
// "tags.json":
//
//	<root>/
//	  Os Lusíadas/
//	    txt
//	    tags.json
//
// The directory shape is the persistence contract; other tools may create
// or read books directly.
package book

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/tag"
	"github.com/jpl-au/bookrab/internal/validate"
)

// File names inside a book directory.
const (
	TextFile = "txt"
	TagsFile = "tags.json"
)

// Document is a book's identity and labels. The text is read separately.
type Document struct {
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// Dir is a book collection rooted at a directory.
type Dir struct {
	root     string
	maxTitle int
}

// Option configures a Dir.
type Option func(*Dir)

// WithMaxTitle limits title length in bytes on upload.
func WithMaxTitle(n int) Option {
	return func(d *Dir) { d.maxTitle = n }
}

// Open returns a Dir rooted at root. The directory is created lazily.
func Open(root string, opts ...Option) *Dir {
	d := &Dir{root: root}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Root returns the collection's root directory.
func (d *Dir) Root() string { return d.root }

// TextPath returns where title's text is stored. It does not check existence.
func (d *Dir) TextPath(title string) string {
	return filepath.Join(d.root, title, TextFile)
}

func (d *Dir) tagsPath(title string) string {
	return filepath.Join(d.root, title, TagsFile)
}

// Exists reports whether title has a text file.
func (d *Dir) Exists(title string) bool {
	if validate.StoredTitle(title) != nil {
		return false
	}
	info, err := os.Stat(d.TextPath(title))
	return err == nil && info.Mode().IsRegular()
}

// List returns every book beneath the root, sorted by title.
//
// A book without tags.json gets an empty one written, so listing can modify
// the disk. A missing root is created and yields no books.
func (d *Dir) List(ctx context.Context) ([]Document, error) {
	entries, err := os.ReadDir(d.root)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(d.root, 0o755); err != nil {
			return nil, fault.IO(fault.CodeCreateDir, "create book root", d.root, err)
		}
		return []Document{}, nil
	}
	if err != nil {
		return nil, fault.IO(fault.CodeReadDir, "read dir", d.root, err)
	}

	docs := make([]Document, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := e.Info()
		if err != nil {
			return nil, fault.IO(fault.CodeReadChild, "read child", filepath.Join(d.root, e.Name()), err)
		}
		if !info.IsDir() {
			continue
		}
		tags, err := d.readTags(e.Name())
		if err != nil {
			return nil, err
		}
		docs = append(docs, Document{Title: e.Name(), Tags: tags})
	}

	slices.SortFunc(docs, func(a, b Document) int { return strings.Compare(a.Title, b.Title) })
	return docs, nil
}

// readTags loads title's tags, creating "[]" when the file is missing.
func (d *Dir) readTags(title string) ([]string, error) {
	path := d.tagsPath(title)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := WriteFile(path, []byte("[]")); err != nil {
			return nil, fault.IO(fault.CodeWriteFile, "write file", path, err)
		}
		return []string{}, nil
	}
	if err != nil {
		return nil, fault.IO(fault.CodeReadFile, "read file", path, err)
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fault.InvalidData(fault.CodeInvalidData, "invalid tags", path, string(data), err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// Get returns the book with the given title.
func (d *Dir) Get(ctx context.Context, title string) (*Document, error) {
	docs, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Title == title {
			return &docs[i], nil
		}
	}
	return nil, fault.NotFound(title)
}

// ListByTags returns the books surviving the include/exclude filter.
func (d *Dir) ListByTags(ctx context.Context, include, exclude tag.Query) ([]Document, error) {
	docs, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	kept := docs[:0]
	for _, doc := range docs {
		if tag.Matches(doc.Tags, include, exclude) {
			kept = append(kept, doc)
		}
	}
	return kept, nil
}

// Tags returns every distinct tag in the collection, sorted.
func (d *Dir) Tags(ctx context.Context) ([]string, error) {
	docs, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	sets := make([][]string, len(docs))
	for i, doc := range docs {
		sets[i] = doc.Tags
	}
	all := tag.Union(sets...)
	if all == nil {
		all = []string{}
	}
	return all, nil
}

// Text returns title's full text.
func (d *Dir) Text(_ context.Context, title string) (string, error) {
	if err := validate.StoredTitle(title); err != nil {
		return "", fault.Input(fault.CodeBadInput, "read book", title, err)
	}
	path := d.TextPath(title)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", fault.NotFound(title)
	}
	if err != nil {
		return "", fault.IO(fault.CodeReadFile, "read file", path, err)
	}
	if !validate.UTF8(string(data)) {
		return "", fault.Encoding(path)
	}
	return string(data), nil
}

// Upload stores text and tags under title, replacing whatever was there.
//
// The two files are written independently. A failure between them leaves
// the new text with the old tags.
func (d *Dir) Upload(ctx context.Context, title, text string, tags []string) error {
	if err := validate.Title(title, d.maxTitle); err != nil {
		return fault.Input(fault.CodeBadInput, "upload", title, err)
	}
	if err := validate.Tags(tags); err != nil {
		return fault.Input(fault.CodeBadInput, "upload", title, err)
	}
	if !validate.UTF8(text) {
		return fault.Encoding(title)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(d.root, title)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fault.IO(fault.CodeCreateDir, "create dir", dir, err)
	}

	if err := WriteFile(d.TextPath(title), []byte(text)); err != nil {
		return fault.IO(fault.CodeWriteFile, "write file", d.TextPath(title), err)
	}

	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return fault.IO(fault.CodeSaveFile, "encode tags", d.tagsPath(title), err)
	}
	if err := WriteFile(d.tagsPath(title), data); err != nil {
		return fault.IO(fault.CodeWriteFile, "write file", d.tagsPath(title), err)
	}
	return nil
}
