// Package grep is bookrab's line-oriented search engine.
//
// A Matcher wraps a compiled regular expression. A Searcher streams a reader
// line by line and reports matching lines and their surrounding context to
// a Sink. The Sink decides what to do with them; the engine keeps no results.
//
// Matching uses RE2 via the regexp package. Offsets it reports always fall on
// UTF-8 boundaries, so sinks can slice lines at match offsets safely.
package grep

import (
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"

	"github.com/jpl-au/bookrab/internal/fault"
)

// Options controls case sensitivity when compiling a pattern.
type Options struct {
	// IgnoreCase matches case-insensitively. Takes precedence over SmartCase.
	IgnoreCase bool
	// SmartCase matches case-insensitively unless the pattern spells an
	// uppercase character, including inside a character class.
	SmartCase bool
}

// Match is one occurrence within a line: [Start, End) byte offsets.
type Match struct {
	Start int
	End   int
}

// Matcher tests and locates a pattern within single lines.
type Matcher struct {
	re      *regexp.Regexp
	pattern string
}

// Compile builds a Matcher. A pattern that fails to parse yields a
// fault.KindPattern error.
func Compile(pattern string, opts Options) (*Matcher, error) {
	fold := opts.IgnoreCase
	if !fold && opts.SmartCase {
		upper, err := hasUppercaseLiteral(pattern)
		if err != nil {
			return nil, fault.Pattern(pattern, err)
		}
		fold = !upper
	}

	expr := pattern
	if fold {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fault.Pattern(pattern, err)
	}
	return &Matcher{re: re, pattern: pattern}, nil
}

// String returns the pattern as given to Compile.
func (m *Matcher) String() string { return m.pattern }

// IsMatch reports whether line contains a match.
func (m *Matcher) IsMatch(line []byte) bool {
	return m.re.Match(line)
}

// FindAll returns every non-overlapping match in line, in ascending order.
func (m *Matcher) FindAll(line []byte) []Match {
	idx := m.re.FindAllIndex(line, -1)
	if len(idx) == 0 {
		return nil
	}
	out := make([]Match, len(idx))
	for i, loc := range idx {
		out[i] = Match{Start: loc[0], End: loc[1]}
	}
	return out
}

// hasUppercaseLiteral reports whether the pattern spells an uppercase
// character: a literal, a class member, or either end of a class range.
// Perl and Unicode class escapes (\w, \S, \pL...) are not spelled
// characters, so they are replaced before parsing. Single-rune alternations
// such as A|b parse to a class and are caught by the class case.
func hasUppercaseLiteral(pattern string) (bool, error) {
	re, err := syntax.Parse(stripClassEscapes(pattern), syntax.Perl)
	if err != nil {
		return false, err
	}
	return walkUpper(re), nil
}

func walkUpper(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpLiteral:
		if re.Flags&syntax.FoldCase == 0 {
			for _, r := range re.Rune {
				if unicode.IsUpper(r) {
					return true
				}
			}
		}
	case syntax.OpCharClass:
		// Under (?i) the parser adds the other case to every class.
		if re.Flags&syntax.FoldCase == 0 {
			for i := 0; i+1 < len(re.Rune); i += 2 {
				if unicode.IsUpper(re.Rune[i]) || unicode.IsUpper(re.Rune[i+1]) {
					return true
				}
			}
		}
	}
	for _, sub := range re.Sub {
		if walkUpper(sub) {
			return true
		}
	}
	return false
}

// stripClassEscapes replaces \d \D \s \S \w \W and \p/\P classes with
// "0" so their expanded ranges do not count as spelled characters. \Q...\E
// spans are copied untouched.
func stripClassEscapes(p string) string {
	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c != '\\' || i+1 >= len(p) {
			b.WriteByte(c)
			continue
		}
		switch n := p[i+1]; n {
		case 'd', 'D', 's', 'S', 'w', 'W':
			b.WriteByte('0')
			i++
		case 'p', 'P':
			j := i + 2
			switch {
			case j >= len(p):
				b.WriteString(p[i:])
				return b.String()
			case p[j] == '{':
				k := strings.IndexByte(p[j:], '}')
				if k < 0 {
					b.WriteString(p[i:])
					return b.String()
				}
				i = j + k
			default:
				i = j
			}
			b.WriteByte('0')
		case 'Q':
			end := strings.Index(p[i+2:], `\E`)
			if end < 0 {
				b.WriteString(p[i:])
				return b.String()
			}
			b.WriteString(p[i : i+2+end+2])
			i += 2 + end + 1
		default:
			b.WriteByte(c)
			b.WriteByte(n)
			i++
		}
	}
	return b.String()
}
