package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/zephyrtronium/eel"
)

// diagnose writes err as a diagnostic for the source text src named name.
// Errors with source spans are shown with the offending line and a caret
// under the span. Calls to unknown functions suggest similar names from
// funcs.
func diagnose(w io.Writer, name, src string, err error, funcs []string) {
	var e *eel.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(w, "%s: %v\n", name, err)
		return
	}
	line, col, text := position(src, e.Span.Start)
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", name, line, col, e.Kind, e.Msg)
	fmt.Fprintf(w, "\t%s\n\t%s%s\n", text, strings.Repeat(" ", col-1), caret(e.Span, col, len(text)))
	if e.Kind == eel.EvalErrorKind && strings.HasSuffix(e.Msg, " is not defined.") && e.Span.End <= len(src) {
		word := src[e.Span.Start:e.Span.End]
		if s := suggest(word, funcs); len(s) != 0 {
			fmt.Fprintf(w, "\tdid you mean %s?\n", strings.Join(s, ", "))
		}
	}
}

// position finds the 1-based line and column of a byte offset in src, along
// with the text of that line.
func position(src string, off int) (line, col int, text string) {
	off = min(max(off, 0), len(src))
	start := strings.LastIndexByte(src[:off], '\n') + 1
	end := strings.IndexByte(src[off:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += off
	}
	line = strings.Count(src[:start], "\n") + 1
	return line, off - start + 1, strings.TrimRight(src[start:end], "\r")
}

// caret underlines a span beginning at col, clipped to a line of the given
// width. Empty spans get a single caret.
func caret(s eel.Span, col, width int) string {
	n := s.End - s.Start
	if rest := width - (col - 1); n > rest {
		n = rest
	}
	if n < 1 {
		n = 1
	}
	return strings.Repeat("^", n)
}

// suggest returns up to three names from candidates that fuzzily match word,
// best first.
func suggest(word string, candidates []string) []string {
	matches := fuzzy.Find(strings.ToLower(word), candidates)
	var r []string
	for _, m := range matches {
		if len(r) == 3 {
			break
		}
		r = append(r, m.Str)
	}
	return r
}
