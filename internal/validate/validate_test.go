package validate

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		title string
		ok    bool
	}{
		{"Os Lusíadas", true},
		{"canto-1", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{`a\b`, false},
		{"a\x00b", false},
		{" padded", false},
	}
	for _, tt := range tests {
		err := Title(tt.title, 0)
		if tt.ok {
			assert.NoError(t, err, tt.title)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTitle, tt.title)
		}
	}

	assert.ErrorIs(t, Title(strings.Repeat("x", 11), 10), ErrTitleTooLong)
	assert.NoError(t, Title(strings.Repeat("x", 10), 10))
}

func TestStoredTitle(t *testing.T) {
	assert.NoError(t, StoredTitle("Os Lusíadas"))
	assert.NoError(t, StoredTitle(" padded "))
	if runtime.GOOS != "windows" {
		assert.NoError(t, StoredTitle(`Vol 1\2`))
	}
	for _, bad := range []string{"", ".", "..", "a/b", "a\x00b"} {
		assert.ErrorIs(t, StoredTitle(bad), ErrInvalidTitle, bad)
	}
}

func TestTag(t *testing.T) {
	assert.NoError(t, Tag("poetry"))
	assert.NoError(t, Tag("século XVI"))
	assert.ErrorIs(t, Tag(""), ErrInvalidTag)
	assert.ErrorIs(t, Tag("   "), ErrInvalidTag)
	assert.ErrorIs(t, Tag("a,b"), ErrInvalidTag)
	assert.ErrorIs(t, Tag("a\nb"), ErrInvalidTag)

	assert.NoError(t, Tags([]string{"a", "b"}))
	assert.ErrorIs(t, Tags([]string{"a", ""}), ErrInvalidTag)
}

func TestContent(t *testing.T) {
	assert.NoError(t, Content("abc", 0))
	assert.NoError(t, Content("abc", 3))
	assert.ErrorIs(t, Content("abcd", 3), ErrContentTooLarge)
	assert.True(t, UTF8("vitupério"))
	assert.False(t, UTF8("\xff\xfe"))
}
