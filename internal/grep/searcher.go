// searcher.go streams a reader and drives a Sink with matched and context
// lines.
//
// Context windows follow grep -B/-A rules. A line is reported at most once:
// before-context only covers lines not already reported as a match or
// after-context, and a new match restarts the after-context window.

package grep

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// DefaultMaxLineLength bounds a single line when Searcher.MaxLineLength is 0.
const DefaultMaxLineLength = 10 * 1024 * 1024

// ErrLineTooLong is returned when a line exceeds the configured maximum.
var ErrLineTooLong = errors.New("line too long")

// checkEvery is how many lines are scanned between context checks.
const checkEvery = 1024

// ContextKind says which side of a match a context line is on.
type ContextKind int

const (
	Before ContextKind = iota
	After
)

func (k ContextKind) String() string {
	if k == After {
		return "after"
	}
	return "before"
}

// SinkMatch describes a matching line. Bytes includes the line terminator,
// if any, and is only valid for the duration of the callback.
type SinkMatch struct {
	Bytes      []byte
	LineNumber int
	Offset     int64 // absolute offset of the line's first byte
}

// SinkContext describes a context line. Bytes follows SinkMatch's rules.
type SinkContext struct {
	Bytes      []byte
	Kind       ContextKind
	LineNumber int
	Offset     int64
}

// SinkFinish summarises a completed search.
type SinkFinish struct {
	ByteCount int64
	Lines     int
	Matches   int
}

// Sink receives search events in stream order, then exactly one Finish.
// Returning false from Matched or Context stops the search early; Finish is
// still called.
type Sink interface {
	Matched(s *Searcher, m SinkMatch) (bool, error)
	Context(s *Searcher, c SinkContext) (bool, error)
	Finish(s *Searcher, f SinkFinish) error
}

// Searcher holds the context window configuration for a search.
type Searcher struct {
	Before        int // lines of context before each match
	After         int // lines of context after each match
	MaxLineLength int // 0 means DefaultMaxLineLength
}

type pendingLine struct {
	bytes  []byte
	number int
	offset int64
}

// Search scans r with m, reporting to sink.
func (s *Searcher) Search(ctx context.Context, m *Matcher, r io.Reader, sink Sink) error {
	maxLine := s.MaxLineLength
	if maxLine <= 0 {
		maxLine = DefaultMaxLineLength
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)
	sc.Split(scanLines)

	var (
		pending   []pendingLine
		afterLeft int
		lineNo    int
		offset    int64
		matches   int
	)

	finish := func() error {
		return sink.Finish(s, SinkFinish{ByteCount: offset, Lines: lineNo, Matches: matches})
	}

	for sc.Scan() {
		if lineNo%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := sc.Bytes()
		lineNo++
		start := offset
		offset += int64(len(line))

		if m.IsMatch(TrimEOL(line)) {
			for _, p := range pending {
				ok, err := sink.Context(s, SinkContext{Bytes: p.bytes, Kind: Before, LineNumber: p.number, Offset: p.offset})
				if err != nil {
					return err
				}
				if !ok {
					return finish()
				}
			}
			pending = pending[:0]
			matches++

			ok, err := sink.Matched(s, SinkMatch{Bytes: line, LineNumber: lineNo, Offset: start})
			if err != nil {
				return err
			}
			if !ok {
				return finish()
			}
			afterLeft = s.After
			continue
		}

		if afterLeft > 0 {
			afterLeft--
			ok, err := sink.Context(s, SinkContext{Bytes: line, Kind: After, LineNumber: lineNo, Offset: start})
			if err != nil {
				return err
			}
			if !ok {
				return finish()
			}
			continue
		}

		if s.Before > 0 {
			if len(pending) == s.Before {
				pending = append(pending[:0], pending[1:]...)
			}
			pending = append(pending, pendingLine{bytes: bytes.Clone(line), number: lineNo, offset: start})
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("line %d: %w (max %d bytes)", lineNo+1, ErrLineTooLong, maxLine)
		}
		return fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return finish()
}

// SearchFile opens path and searches it. A missing file returns an error
// wrapping fs.ErrNotExist.
func (s *Searcher) SearchFile(ctx context.Context, m *Matcher, path string, sink Sink) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return s.Search(ctx, m, f, sink)
}

// scanLines splits on '\n' but keeps the terminator. The final line may
// have none.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// TrimEOL strips a single trailing "\n". Sinks use it to recover the bytes
// the matcher saw.
func TrimEOL(line []byte) []byte {
	return bytes.TrimSuffix(line, []byte("\n"))
}
