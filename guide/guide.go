// Package guide holds the markdown pages behind "bookrab guide", "bookrab
// llm" and the book_guide MCP tool. Pages are embedded so the binary always
// carries its own documentation.
package guide

import (
	"bufio"
	"embed"
	"fmt"
	"slices"
	"strings"
)

//go:embed *.md
var files embed.FS

// Default is the page served for an empty topic.
const Default = "guide"

// Topic is a guide page and the text of its first heading.
type Topic struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Get returns the markdown of a guide page. An empty name returns Default.
func Get(name string) (string, error) {
	if name == "" {
		name = Default
	}
	data, err := files.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("guide %q: %w", name, err)
	}
	return string(data), nil
}

// List returns the page names other than Default, sorted.
func List() ([]string, error) {
	topics, err := Topics()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(topics))
	for i, t := range topics {
		names[i] = t.Name
	}
	return names, nil
}

// Topics returns every page other than Default with its heading, sorted by
// name.
func Topics() ([]Topic, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".md")
		if name == Default {
			continue
		}
		md, err := Get(name)
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: heading(md)})
	}
	slices.SortFunc(topics, func(a, b Topic) int { return strings.Compare(a.Name, b.Name) })
	return topics, nil
}

// heading returns the first "# " line of md without the marker.
func heading(md string) string {
	sc := bufio.NewScanner(strings.NewReader(md))
	for sc.Scan() {
		if h, ok := strings.CutPrefix(sc.Text(), "# "); ok {
			return strings.TrimSpace(h)
		}
	}
	return ""
}
