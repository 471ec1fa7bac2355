// annotate.go implements the grep.Sink that builds result chunks.
//
// Chunk rules:
//   - matched lines and context lines are appended to the current chunk
//   - with no after-context, every match closes its chunk
//   - otherwise a chunk closes once After after-context lines follow a match
//   - a trailing empty chunk is dropped on Finish
//
// The current chunk is tracked by index. Closing a chunk pushes an empty
// one and moves the index to it; the next append starts filling it.

package search

import (
	"strings"
	"unicode/utf8"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/grep"
)

type annotator struct {
	matcher *grep.Matcher
	res     *Results
	path    string // reported on encoding errors

	cur   int          // index of the open chunk, -1 before the first
	after int          // after-context lines appended since the last match
	spans []grep.Match // scratch, reused across lines
}

var _ grep.Sink = (*annotator)(nil)

func newAnnotator(m *grep.Matcher, res *Results, path string) *annotator {
	return &annotator{matcher: m, res: res, path: path, cur: -1}
}

// Matched wraps each match on the line in markers and appends it.
func (a *annotator) Matched(s *grep.Searcher, m grep.SinkMatch) (bool, error) {
	line := grep.TrimEOL(m.Bytes)
	a.spans = append(a.spans[:0], a.matcher.FindAll(line)...)
	if n := len(a.spans); n > 0 {
		last := a.spans[n-1]
		if last.Start == last.End && last.Start >= len(line) {
			a.spans = a.spans[:n-1]
		}
	}

	if !utf8.Valid(m.Bytes) {
		return false, fault.Encoding(a.path)
	}

	a.appendChunk(mark(string(m.Bytes), a.spans))
	a.after = 0
	if s.After == 0 {
		a.closeChunk()
	}
	return true, nil
}

// Context appends the line and closes the chunk when the after window fills.
func (a *annotator) Context(s *grep.Searcher, c grep.SinkContext) (bool, error) {
	if !utf8.Valid(c.Bytes) {
		return false, fault.Encoding(a.path)
	}
	a.appendChunk(string(c.Bytes))

	if c.Kind == grep.After {
		a.after++
		if a.after >= s.After {
			a.after = 0
			a.closeChunk()
		}
	}
	return true, nil
}

// Finish drops the empty chunk left by a close at end of input.
func (a *annotator) Finish(_ *grep.Searcher, _ grep.SinkFinish) error {
	if a.cur >= 0 && a.res.Results[a.cur] == "" {
		a.res.Results = a.res.Results[:a.cur]
		a.cur--
	}
	if a.res.Results == nil {
		a.res.Results = []string{}
	}
	return nil
}

func (a *annotator) appendChunk(s string) {
	if a.cur < 0 {
		a.res.Results = append(a.res.Results, "")
		a.cur = len(a.res.Results) - 1
	}
	a.res.Results[a.cur] += s
}

func (a *annotator) closeChunk() {
	if a.cur >= 0 && a.res.Results[a.cur] == "" {
		return
	}
	a.res.Results = append(a.res.Results, "")
	a.cur = len(a.res.Results) - 1
}

// mark inserts markers around each span of line. Spans are ascending and
// non-overlapping byte ranges on UTF-8 boundaries.
func mark(line string, spans []grep.Match) string {
	if len(spans) == 0 {
		return line
	}
	var b strings.Builder
	b.Grow(len(line) + len(spans)*(len(MatchOpen)+len(MatchClose)))
	prev := 0
	for _, sp := range spans {
		b.WriteString(line[prev:sp.Start])
		b.WriteString(MatchOpen)
		b.WriteString(line[sp.Start:sp.End])
		b.WriteString(MatchClose)
		prev = sp.End
	}
	b.WriteString(line[prev:])
	return b.String()
}
