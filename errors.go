package eel

import (
	"errors"
	"log/slog"
)

// ErrorKind classifies an Error by the phase that produced it.
type ErrorKind int8

const (
	// LexErrorKind is an unrecognized character or an unterminated comment.
	LexErrorKind ErrorKind = iota + 1
	// SyntaxErrorKind is a token that does not fit the grammar, including
	// end of input inside an open group or argument list.
	SyntaxErrorKind
	// NumberErrorKind is a numeric literal that cannot be read as a float.
	NumberErrorKind
	// EvalErrorKind is a call to an unknown function, a call with the wrong
	// number of arguments, or an invalid assignment target.
	EvalErrorKind
)

func (k ErrorKind) String() string {
	switch k {
	case LexErrorKind:
		return "lex error"
	case SyntaxErrorKind:
		return "syntax error"
	case NumberErrorKind:
		return "number format error"
	case EvalErrorKind:
		return "evaluation error"
	default:
		return "error"
	}
}

// Error is a diagnostic with the source span that caused it. Every error
// resulting from invalid input, whether found while parsing or while
// evaluating, is an *Error.
type Error struct {
	// Kind is the class of the error.
	Kind ErrorKind
	// Msg is a human-readable description without position information.
	Msg string
	// Span is the byte range of the source responsible for the error.
	Span Span
}

func (err *Error) Error() string {
	return errpos(err.Span, err.Kind.String()+": "+err.Msg)
}

// Pos returns the byte offset at which the error begins.
func (err *Error) Pos() int {
	return err.Span.Start
}

// LogValue implements slog.LogValuer.
func (err *Error) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", err.Kind.String()),
		slog.String("msg", err.Msg),
		slog.Int("start", err.Span.Start),
		slog.Int("end", err.Span.End),
	)
}

// errpos is a shortcut to create an error message with a position.
func errpos(s Span, msg string) string {
	return s.String() + ": " + msg
}

// IsSyntax reports whether err is a lexing, parsing, or number format error.
func IsSyntax(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == LexErrorKind || e.Kind == SyntaxErrorKind || e.Kind == NumberErrorKind
}

// IsEval reports whether err is an evaluation error.
func IsEval(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == EvalErrorKind
}

func syntaxError(s Span, msg string) error {
	return &Error{Kind: SyntaxErrorKind, Msg: msg, Span: s}
}

func evalError(s Span, msg string) error {
	return &Error{Kind: EvalErrorKind, Msg: msg, Span: s}
}
