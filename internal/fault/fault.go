// Package fault defines the typed errors shared by every bookrab layer.
//
// The core never decides how an error is presented. It attaches a Kind, a
// stable Code and the offending path or content, and the presentation layers
// (CLI, REST, MCP, TUI) map those onto exit messages or status codes.
package fault

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error independently of the operation that raised it.
type Kind int

const (
	KindIO Kind = iota + 1
	KindNotFound
	KindInvalidData
	KindEncoding
	KindPattern
	KindBackend
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotFound:
		return "not found"
	case KindInvalidData:
		return "invalid data"
	case KindEncoding:
		return "encoding"
	case KindPattern:
		return "pattern"
	case KindBackend:
		return "backend"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Stable error codes. They are part of the REST and JSON CLI output.
const (
	CodeSaveFile     = "E0001"
	CodeCreateDir    = "E0002"
	CodeNotPlainText = "E0003"
	CodeWriteFile    = "E0004"
	CodeLayout       = "E0005"
	CodeReadChild    = "E0006"
	CodeInvalidData  = "E0007" // tags.json or history content
	CodeReadFile     = "E0008"
	CodeReadDir      = "E0009"
	CodeNotUnicode   = "E0010"
	CodeNoSuchBook   = "E0011"
	CodeBadPattern   = "E0012"
	CodeSearchFailed = "E0013"
	CodeBadInput     = "E0014"
	CodeBackend      = "E0015"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrIO          = errors.New("io failure")
	ErrNotFound    = errors.New("not found")
	ErrInvalidData = errors.New("invalid data")
	ErrEncoding    = errors.New("invalid encoding")
	ErrPattern     = errors.New("invalid pattern")
	ErrBackend     = errors.New("history backend failure")
	ErrInput       = errors.New("invalid input")
)

// Error is a classified failure carrying enough context to report it.
type Error struct {
	Kind    Kind
	Code    string
	Op      string // operation, e.g. "read dir"
	Path    string // offending path, title or pattern
	Content string // raw offending content, when useful (bad tags.json)
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Content != "" {
		fmt.Fprintf(&b, " (content: %q)", truncate(e.Content, 120))
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindIO:
		return ErrIO
	case KindNotFound:
		return ErrNotFound
	case KindInvalidData:
		return ErrInvalidData
	case KindEncoding:
		return ErrEncoding
	case KindPattern:
		return ErrPattern
	case KindBackend:
		return ErrBackend
	case KindInput:
		return ErrInput
	}
	return nil
}

// IO wraps an operating system failure for the given operation and path.
func IO(code, op, path string, err error) *Error {
	return &Error{Kind: KindIO, Code: code, Op: op, Path: path, Err: err}
}

// NotFound reports a missing book.
func NotFound(title string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNoSuchBook, Op: "no such book", Path: title}
}

// InvalidData reports unparsable stored content.
func InvalidData(code, op, path, content string, err error) *Error {
	return &Error{Kind: KindInvalidData, Code: code, Op: op, Path: path, Content: content, Err: err}
}

// Encoding reports non UTF-8 text.
func Encoding(path string) *Error {
	return &Error{Kind: KindEncoding, Code: CodeNotUnicode, Op: "text is not valid UTF-8", Path: path}
}

// Pattern reports a regex that failed to compile.
func Pattern(pattern string, err error) *Error {
	return &Error{Kind: KindPattern, Code: CodeBadPattern, Op: "compile pattern", Path: pattern, Err: err}
}

// Backend reports a history storage failure.
func Backend(op string, err error) *Error {
	return &Error{Kind: KindBackend, Code: CodeBackend, Op: op, Err: err}
}

// Input reports a caller mistake (bad title, tag, or upload content type).
func Input(code, op, path string, err error) *Error {
	return &Error{Kind: KindInput, Code: code, Op: op, Path: path, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Status maps err onto an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindInput, KindPattern:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case 0:
		if err == nil {
			return http.StatusOK
		}
	}
	return http.StatusInternalServerError
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
