// content.go implements book text validation.

package validate

import "unicode/utf8"

// Content validates book text size. maxLen of 0 means no limit.
func Content(content string, maxLen int64) error {
	if maxLen > 0 && int64(len(content)) > maxLen {
		return ErrContentTooLarge
	}
	return nil
}

// UTF8 reports whether content is valid UTF-8. bookrab only stores text.
func UTF8(content string) bool {
	return utf8.ValidString(content)
}
