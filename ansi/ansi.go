// Package ansi provides the handful of text styles used when printing diagnostics to a terminal. It's a thin
// wrapper around [github.com/fatih/color] so that the rest of the codebase doesn't need to depend on it directly.
package ansi

import "github.com/fatih/color"

var (
	boldFn  = color.New(color.Bold).SprintFunc()
	faintFn = color.New(color.Faint).SprintFunc()
	redBold = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Bold returns s styled in bold, or unstyled if output isn't a terminal (see [color.NoColor]).
func Bold(s string) string { return boldFn(s) }

// Faint returns s styled faint, e.g. for a source code snippet accompanying an error.
func Faint(s string) string { return faintFn(s) }

// RedBold returns s styled in bold red, used for the word "Error" in diagnostics.
func RedBold(s string) string { return redBold(s) }
