package grep

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures sink events as "kind:line" strings.
type recorder struct {
	events   []string
	stopAt   int // stop after this many matches, 0 = never
	finished bool
	finish   SinkFinish
}

func (r *recorder) Matched(_ *Searcher, m SinkMatch) (bool, error) {
	r.events = append(r.events, fmt.Sprintf("match:%d:%s", m.LineNumber, m.Bytes))
	if r.stopAt > 0 && r.stopAt == r.count("match") {
		return false, nil
	}
	return true, nil
}

func (r *recorder) Context(_ *Searcher, c SinkContext) (bool, error) {
	r.events = append(r.events, fmt.Sprintf("%s:%d:%s", c.Kind, c.LineNumber, c.Bytes))
	return true, nil
}

func (r *recorder) Finish(_ *Searcher, f SinkFinish) error {
	r.finished = true
	r.finish = f
	return nil
}

func (r *recorder) count(prefix string) int {
	n := 0
	for _, e := range r.events {
		if strings.HasPrefix(e, prefix+":") {
			n++
		}
	}
	return n
}

func run(t *testing.T, s Searcher, pattern, text string) *recorder {
	t.Helper()
	m, err := Compile(pattern, Options{})
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, s.Search(context.Background(), m, strings.NewReader(text), rec))
	return rec
}

func TestSearch_NoContext(t *testing.T) {
	rec := run(t, Searcher{}, "m", "a\nm1\nb\nm2")
	assert.Equal(t, []string{"match:2:m1\n", "match:4:m2"}, rec.events)
	assert.True(t, rec.finished)
	assert.Equal(t, SinkFinish{ByteCount: 9, Lines: 4, Matches: 2}, rec.finish)
}

func TestSearch_ContextWindows(t *testing.T) {
	rec := run(t, Searcher{Before: 1, After: 1}, "^m", "a\nm1\nb\nc\nm2\nd\ne\n")
	assert.Equal(t, []string{
		"before:1:a\n",
		"match:2:m1\n",
		"after:3:b\n",
		"before:4:c\n",
		"match:5:m2\n",
		"after:6:d\n",
	}, rec.events)
}

func TestSearch_LinesReportedOnce(t *testing.T) {
	// The second match falls inside the first one's after window. Nothing is
	// repeated and the window restarts at the second match.
	rec := run(t, Searcher{Before: 2, After: 1}, "^m", "x\nm\ny\nm\nz\nw\n")
	assert.Equal(t, []string{
		"before:1:x\n",
		"match:2:m\n",
		"after:3:y\n",
		"match:4:m\n",
		"after:5:z\n",
	}, rec.events)
}

func TestSearch_BeforeWindowBounded(t *testing.T) {
	rec := run(t, Searcher{Before: 2}, "^m", "1\n2\n3\n4\nm\n")
	assert.Equal(t, []string{"before:3:3\n", "before:4:4\n", "match:5:m\n"}, rec.events)
}

func TestSearch_MatchIgnoresTerminator(t *testing.T) {
	rec := run(t, Searcher{}, `o$`, "foo\nbar\n")
	assert.Equal(t, []string{"match:1:foo\n"}, rec.events)
}

func TestSearch_StopEarly(t *testing.T) {
	m, err := Compile("m", Options{})
	require.NoError(t, err)
	rec := &recorder{stopAt: 1}
	require.NoError(t, (&Searcher{}).Search(context.Background(), m, strings.NewReader("m\nm\nm\n"), rec))
	assert.Equal(t, 1, rec.count("match"))
	assert.True(t, rec.finished)
}

func TestSearch_LineTooLong(t *testing.T) {
	m, err := Compile("x", Options{})
	require.NoError(t, err)
	s := Searcher{MaxLineLength: 8}
	err = s.Search(context.Background(), m, strings.NewReader("short\n"+strings.Repeat("x", 32)), &recorder{})
	assert.ErrorIs(t, err, ErrLineTooLong)
}

func TestSearch_Cancelled(t *testing.T) {
	m, err := Compile("x", Options{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = (&Searcher{}).Search(ctx, m, strings.NewReader("x\n"), &recorder{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchFile_Missing(t *testing.T) {
	m, err := Compile("x", Options{})
	require.NoError(t, err)
	err = (&Searcher{}).SearchFile(context.Background(), m, filepath.Join(t.TempDir(), "nope"), &recorder{})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompile_Case(t *testing.T) {
	tests := []struct {
		pattern string
		opts    Options
		line    string
		want    bool
	}{
		{"por", Options{}, "Por", false},
		{"por", Options{IgnoreCase: true}, "Por", true},
		{"por", Options{SmartCase: true}, "POR", true},
		{"Por", Options{SmartCase: true}, "por", false},
		{"Por", Options{SmartCase: true, IgnoreCase: true}, "por", true},
		{`\Wpor`, Options{SmartCase: true}, " POR", true},
		{`\w+por`, Options{SmartCase: true}, "aPOR", true},
		{`\p{Lu}x`, Options{SmartCase: true}, "AX", true},
		{`[A-Z]x`, Options{SmartCase: true}, "ax", false},
		{`[A-Z]x`, Options{SmartCase: true}, "Bx", true},
		{`[a-z]x`, Options{SmartCase: true}, "AX", true},
		{`A|b`, Options{SmartCase: true}, "ax", false},
		{`A|b`, Options{SmartCase: true}, "B", false},
		{`a|b`, Options{SmartCase: true}, "B", true},
		{`[xY]`, Options{SmartCase: true}, "y", false},
		{`\QA.b\E`, Options{SmartCase: true}, "a.b", false},
		{`(?i)[a-z]x`, Options{SmartCase: true}, "AX", true},
		{"céu", Options{SmartCase: true}, "CÉU", true},
		{"Céu", Options{SmartCase: true}, "céu", false},
	}
	for _, tt := range tests {
		m, err := Compile(tt.pattern, tt.opts)
		require.NoError(t, err, tt.pattern)
		assert.Equal(t, tt.want, m.IsMatch([]byte(tt.line)), "%q %+v on %q", tt.pattern, tt.opts, tt.line)
	}
}

func TestStripClassEscapes(t *testing.T) {
	tests := map[string]string{
		`\w+`:        `0+`,
		`[\d\S]`:     `[00]`,
		`\pLx`:       `0x`,
		`\p{Greek}A`: `0A`,
		`\QA\w\E\W`:  `\QA\w\E0`,
		`\.\\w`:      `\.\\w`,
		`trailing\`:  `trailing\`,
	}
	for in, want := range tests {
		assert.Equal(t, want, stripClassEscapes(in), in)
	}
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile("(unclosed", Options{})
	require.ErrorIs(t, err, fault.ErrPattern)
	assert.Equal(t, fault.CodeBadPattern, fault.CodeOf(err))

	_, err = Compile("(unclosed", Options{SmartCase: true})
	assert.ErrorIs(t, err, fault.ErrPattern)
}

func TestFindAll(t *testing.T) {
	m, err := Compile("v", Options{})
	require.NoError(t, err)
	line := []byte("Obedece o visíbil e ínvisíbil")
	got := m.FindAll(line)
	require.Len(t, got, 2)
	for _, g := range got {
		assert.Equal(t, "v", string(line[g.Start:g.End]))
	}
	assert.Nil(t, m.FindAll([]byte("nada")))
	assert.Equal(t, "v", m.String())
}
