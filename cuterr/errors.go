// Package cuterr defines the error kinds reported while turning a cut table
// into a timeline document.
package cuterr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure.
type Kind int

const (
	// Format covers malformed timecodes, degenerate cut ranges and
	// unparseable cut tables.
	Format Kind = iota + 1
	// Collaborator covers failures of the title image renderer.
	Collaborator
	// IO covers failures reading the cut table or writing the document.
	IO
)

func (k Kind) String() string {
	switch k {
	case Format:
		return "format error"
	case Collaborator:
		return "collaborator error"
	case IO:
		return "io error"
	default:
		return "error"
	}
}

// Error carries enough context to locate the offending record.
// Line is 1-based; Cut is a zero-based index within Source, or -1.
type Error struct {
	Kind   Kind
	Line   int
	Source string
	Cut    int
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Line > 0 {
		fmt.Fprintf(&b, ": line %d", e.Line)
	}
	if e.Source != "" {
		fmt.Fprintf(&b, ": source %q", e.Source)
	}
	if e.Cut >= 0 && e.Source != "" {
		fmt.Fprintf(&b, " cut %d", e.Cut)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Formatf builds a Format error with no location.
func Formatf(format string, args ...any) *Error {
	return &Error{Kind: Format, Cut: -1, Msg: fmt.Sprintf(format, args...)}
}

// AtLine builds a Format error pointing at a cut-table line.
func AtLine(line int, format string, args ...any) *Error {
	return &Error{Kind: Format, Line: line, Cut: -1, Msg: fmt.Sprintf(format, args...)}
}

// AtCut attaches a source identifier and cut index to err. An existing *Error
// keeps its kind; anything else is classified as kind.
func AtCut(kind Kind, source string, cut int, err error) *Error {
	var ce *Error
	if errors.As(err, &ce) {
		out := *ce
		out.Source = source
		out.Cut = cut
		return &out
	}
	return &Error{Kind: kind, Source: source, Cut: cut, Err: err}
}

// Wrap classifies err as kind with a short description of the operation.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Cut: -1, Msg: msg, Err: err}
}

func is(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func IsFormat(err error) bool       { return is(err, Format) }
func IsCollaborator(err error) bool { return is(err, Collaborator) }
func IsIO(err error) bool           { return is(err, IO) }
