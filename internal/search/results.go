// Package search runs regex searches over books and annotates the matches.
//
// Each book's text is streamed through the grep engine. An annotator sink
// turns the engine's events into result chunks: a chunk holds one match
// group with its context lines, and every match in it is wrapped in
// MatchOpen/MatchClose markers.
package search

import (
	"fmt"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/grep"
)

// Markers wrapped around every match occurrence.
const (
	MatchOpen  = "[matched]"
	MatchClose = "[/matched]"
)

// Results holds the annotated chunks found in one book.
type Results struct {
	Title   string   `json:"title"`
	Results []string `json:"results"`
}

// Query describes what to search for and how much context to keep.
type Query struct {
	Pattern    string `json:"pattern"`
	IgnoreCase bool   `json:"ignore_case,omitempty"`
	SmartCase  bool   `json:"smart_case,omitempty"`
	Before     int    `json:"before,omitempty"`
	After      int    `json:"after,omitempty"`
}

// Validate rejects negative context windows.
func (q Query) Validate() error {
	if q.Before < 0 || q.After < 0 {
		return fault.Input(fault.CodeBadInput, "search", q.Pattern,
			fmt.Errorf("context sizes must be non-negative (before=%d after=%d)", q.Before, q.After))
	}
	return nil
}

func (q Query) matcherOptions() grep.Options {
	return grep.Options{IgnoreCase: q.IgnoreCase, SmartCase: q.SmartCase}
}
