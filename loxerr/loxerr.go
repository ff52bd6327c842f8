// Package loxerr defines the error type used to report lexical, syntax and runtime errors found while running a Lox
// program.
package loxerr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhawkins-dev/golox/ansi"
)

// Error describes a single error encountered while scanning, parsing or executing a Lox program. It's always
// attributable to a line of source code.
type Error struct {
	Line  int
	Where string // e.g. "at 'foo'", "at end"; empty if not applicable
	Msg   string
}

// New creates an [*Error] reported against line with no "where" context.
func New(line int, msg string) *Error {
	return &Error{Line: line, Msg: msg}
}

// Newf is like [New] but builds the message with [fmt.Sprintf].
func Newf(line int, format string, args ...any) *Error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// NewAt is like [New] but attributes the error to a specific token lexeme or "end of file".
func NewAt(line int, where, msg string) *Error {
	return &Error{Line: line, Where: where, Msg: msg}
}

// NewAtf is like [NewAt] but builds the message with [fmt.Sprintf].
func NewAtf(line int, where, format string, args ...any) *Error {
	return &Error{Line: line, Where: where, Msg: fmt.Sprintf(format, args...)}
}

// Error formats the error as "[line N] Error<where>: <message>", e.g.:
//
//	[line 2] Error at '+': expected expression
func (e *Error) Error() string {
	var where string
	if e.Where != "" {
		where = " " + e.Where
	}
	return fmt.Sprintf("[line %d] %s%s: %s", e.Line, ansi.RedBold("Error"), where, e.Msg)
}

// Errors is a list of [*Error]s accumulated while processing a Lox program.
type Errors []*Error

// Add appends a new [*Error] to the list.
func (e *Errors) Add(line int, msg string) {
	*e = append(*e, New(line, msg))
}

// Addf is like Add but builds the message with [fmt.Sprintf].
func (e *Errors) Addf(line int, format string, args ...any) {
	*e = append(*e, Newf(line, format, args...))
}

// AddAt appends a new [*Error] attributed to a token lexeme or "end of file".
func (e *Errors) AddAt(line int, where, msg string) {
	*e = append(*e, NewAt(line, where, msg))
}

// AddAtf is like AddAt but builds the message with [fmt.Sprintf].
func (e *Errors) AddAtf(line int, where, format string, args ...any) {
	*e = append(*e, NewAtf(line, where, format, args...))
}

// Sort sorts the errors by the line on which they were reported, preserving relative order of errors on the same
// line.
func (e Errors) Sort() {
	sort.SliceStable(e, func(i, j int) bool { return e[i].Line < e[j].Line })
}

// Error formats the errors by sorting them and joining their messages, one per line.
func (e Errors) Error() string {
	e.Sort()
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns e as an error if it's non-empty, otherwise nil. This should be used when returning an Errors value
// from a function as an error so that a caller's `err != nil` check behaves correctly.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
