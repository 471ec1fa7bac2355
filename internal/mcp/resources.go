// resources.go implements MCP resource handlers for book access.
//
// MCP resources provide read-only access to book text via a URI scheme,
// letting LLM clients load a book into context without calling a tool.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyTitle indicates a resource URI without a book title.
	ErrEmptyTitle = errors.New("empty book title")
)

// readBookResource reads a book and returns it as resource contents.
func (h *handlers) readBookResource(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	title, err := parseBookURI(uri)
	if err != nil {
		return nil, err
	}

	text, err := h.svc.Text(ctx, title)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}, nil
}

// parseBookURI extracts the title from bookrab://books/{title}. Titles may
// be percent-encoded since they can contain spaces.
func parseBookURI(uri string) (string, error) {
	const prefix = "bookrab://books/"
	if !strings.HasPrefix(uri, prefix) {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	rest := strings.TrimPrefix(uri, prefix)
	if rest == "" {
		return "", ErrEmptyTitle
	}
	title, err := url.PathUnescape(rest)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	return title, nil
}
