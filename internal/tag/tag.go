// Package tag evaluates tag queries against a book's tag set.
//
// A filter is an (Include, Exclude) pair of queries. Each query is a set of
// tags and a mode: All requires every query tag to be present on the book,
// Any requires at least one. An empty include query keeps everything and an
// empty exclude query removes nothing, whatever the mode.
package tag

import (
	"fmt"
	"slices"
	"strings"
)

// Mode selects how a query's tags are combined.
type Mode int

const (
	// Any matches when at least one query tag is present.
	Any Mode = iota
	// All matches when every query tag is present.
	All
)

// ParseMode accepts "any" or "all" in any case. Empty input yields Any.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return Any, nil
	case "all":
		return All, nil
	default:
		return Any, fmt.Errorf("unknown tag mode %q (valid: any, all)", s)
	}
}

func (m Mode) String() string {
	if m == All {
		return "all"
	}
	return "any"
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Query is one side of a tag filter.
type Query struct {
	Mode Mode     `json:"mode"`
	Tags []string `json:"tags"`
}

// Empty reports whether the query carries no tags.
func (q Query) Empty() bool { return len(q.Tags) == 0 }

// eval applies q to doc. Duplicate tags on either side do not matter.
func (q Query) eval(doc []string) bool {
	if q.Mode == All {
		for _, t := range q.Tags {
			if !slices.Contains(doc, t) {
				return false
			}
		}
		return true
	}
	for _, t := range q.Tags {
		if slices.Contains(doc, t) {
			return true
		}
	}
	return false
}

// Include reports whether doc passes the include query.
func Include(doc []string, q Query) bool {
	if q.Empty() {
		return true
	}
	return q.eval(doc)
}

// Exclude reports whether doc is removed by the exclude query.
func Exclude(doc []string, q Query) bool {
	if q.Empty() {
		return false
	}
	return q.eval(doc)
}

// Matches reports whether a book tagged doc survives the filter.
func Matches(doc []string, include, exclude Query) bool {
	return Include(doc, include) && !Exclude(doc, exclude)
}

// Parse splits a comma separated tag list, trimming blanks and dropping
// empty entries. Used by every front-end that takes tags as text.
func Parse(csv string) []string {
	var tags []string
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Union returns the sorted distinct tags across all sets.
func Union(sets ...[]string) []string {
	var all []string
	for _, s := range sets {
		all = append(all, s...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}
