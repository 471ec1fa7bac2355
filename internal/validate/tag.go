// tag.go implements tag string validation.
//
// Separated from title.go because tags are labels stored inside tags.json,
// never on the filesystem, so they need no separator checks.

package validate

import (
	"fmt"
	"strings"
	"unicode"
)

// Tag validates a tag string.
//
// Validation rules:
//   - Empty tags rejected (meaningless label)
//   - Control characters rejected, including null bytes
//   - A comma is rejected because tag lists travel as comma separated values
//     on the command line and in query strings
func Tag(t string) error {
	if strings.TrimSpace(t) == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidTag)
	}
	if strings.ContainsRune(t, ',') {
		return fmt.Errorf("%w: %q contains a comma", ErrInvalidTag, t)
	}
	for _, r := range t {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character in %q", ErrInvalidTag, t)
		}
	}
	return nil
}

// Tags validates every tag in the list.
func Tags(tags []string) error {
	for _, t := range tags {
		if err := Tag(t); err != nil {
			return err
		}
	}
	return nil
}
