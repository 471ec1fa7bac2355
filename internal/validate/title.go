// title.go validates book titles.
//
// A title is used verbatim as a directory name beneath the book root, so it
// must be a single path segment. Titles are not normalised: the directory
// name and the title must always be identical for listing to round-trip.

package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Title validates a book title.
//
// Rules:
//   - Empty, "." and ".." are rejected
//   - Path separators (both / and \) are rejected
//   - Null bytes are rejected
//   - Leading or trailing whitespace is rejected
//   - Max length enforced if maxLen > 0
func Title(t string, maxLen int) error {
	switch t {
	case "":
		return fmt.Errorf("%w: empty title", ErrInvalidTitle)
	case ".", "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTitle, t)
	}
	if strings.ContainsAny(t, `/\`) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTitle, t)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in title", ErrInvalidTitle)
	}
	if strings.TrimSpace(t) != t {
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidTitle, t)
	}
	if maxLen > 0 && len(t) > maxLen {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrTitleTooLong, len(t), maxLen)
	}
	return nil
}

// StoredTitle validates a title used to read an existing book. Books may be
// created by other tools, so only names that could leave the book root or
// cannot name a directory are rejected: empty, ".", "..", a separator of
// the host OS or "/", and NUL. Whitespace and "\" on Unix are allowed.
func StoredTitle(t string) error {
	switch t {
	case "":
		return fmt.Errorf("%w: empty title", ErrInvalidTitle)
	case ".", "..":
		return fmt.Errorf("%w: %q is reserved", ErrInvalidTitle, t)
	}
	if strings.ContainsRune(t, '/') || strings.ContainsRune(t, filepath.Separator) {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidTitle, t)
	}
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in title", ErrInvalidTitle)
	}
	return nil
}
