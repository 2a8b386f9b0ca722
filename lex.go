package eel

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range [Start, End) of source text.
type Span struct {
	Start int
	End   int
}

// Empty returns whether the span is zero-width. The start-of-file sentinel
// token has an empty span.
func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) String() string {
	return strconv.Itoa(s.Start) + "-" + strconv.Itoa(s.End)
}

type token struct {
	kind tokenKind
	span Span
}

func (t token) String() string {
	return t.kind.String() + "@" + t.span.String()
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenSOF precedes the first real token.
	tokenSOF
	// tokenEOF indicates the end of the input. The lexer returns it forever
	// once the input is exhausted.
	tokenEOF
	// tokenNum is a run of digits and decimal points.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent

	tokenOpenParen
	tokenCloseParen
	tokenComma
	tokenSemi

	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
	tokenCaret
	tokenBang
	tokenAmp
	tokenPipe
	tokenAmpAmp
	tokenPipePipe
	tokenEqEq
	tokenBangEq
	tokenLess
	tokenLessEq
	tokenGreater
	tokenGreaterEq

	tokenEq
	tokenPlusEq
	tokenMinusEq
	tokenStarEq
	tokenSlashEq
	tokenPercentEq
)

var tokenNames = [...]string{
	tokenNone:       "None",
	tokenSOF:        "SOF",
	tokenEOF:        "EOF",
	tokenNum:        "Number",
	tokenIdent:      "Identifier",
	tokenOpenParen:  "OpenParen",
	tokenCloseParen: "CloseParen",
	tokenComma:      "Comma",
	tokenSemi:       "Semicolon",
	tokenPlus:       "Plus",
	tokenMinus:      "Minus",
	tokenStar:       "Asterisk",
	tokenSlash:      "Slash",
	tokenPercent:    "Percent",
	tokenCaret:      "Caret",
	tokenBang:       "Bang",
	tokenAmp:        "Ampersand",
	tokenPipe:       "Pipe",
	tokenAmpAmp:     "AndAnd",
	tokenPipePipe:   "PipePipe",
	tokenEqEq:       "DoubleEqual",
	tokenBangEq:     "BangEqual",
	tokenLess:       "Less",
	tokenLessEq:     "LessEqual",
	tokenGreater:    "Greater",
	tokenGreaterEq:  "GreaterEqual",
	tokenEq:         "Equal",
	tokenPlusEq:     "PlusEqual",
	tokenMinusEq:    "MinusEqual",
	tokenStarEq:     "TimesEqual",
	tokenSlashEq:    "DivEqual",
	tokenPercentEq:  "ModEqual",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// punct maps operator spellings to token kinds. Two-byte spellings are tried
// before one-byte spellings.
var punct = map[string]tokenKind{
	"(":  tokenOpenParen,
	")":  tokenCloseParen,
	",":  tokenComma,
	";":  tokenSemi,
	"+":  tokenPlus,
	"-":  tokenMinus,
	"*":  tokenStar,
	"/":  tokenSlash,
	"%":  tokenPercent,
	"^":  tokenCaret,
	"!":  tokenBang,
	"&":  tokenAmp,
	"|":  tokenPipe,
	"<":  tokenLess,
	">":  tokenGreater,
	"=":  tokenEq,
	"&&": tokenAmpAmp,
	"||": tokenPipePipe,
	"==": tokenEqEq,
	"!=": tokenBangEq,
	"<=": tokenLessEq,
	">=": tokenGreaterEq,
	"+=": tokenPlusEq,
	"-=": tokenMinusEq,
	"*=": tokenStarEq,
	"/=": tokenSlashEq,
	"%=": tokenPercentEq,
}

type lexer struct {
	src string
	pos int
	sof bool
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// source returns the text of the source covered by a span.
func (l *lexer) source(s Span) string {
	return l.src[s.Start:s.End]
}

// next scans the next token. The first call returns the SOF sentinel. Once
// the input is exhausted, every call returns an EOF token positioned at the
// end of the source.
func (l *lexer) next() (token, error) {
	if !l.sof {
		l.sof = true
		return token{kind: tokenSOF}, nil
	}
	if err := l.skip(); err != nil {
		return token{}, err
	}
	start := l.pos
	if start >= len(l.src) {
		return token{kind: tokenEOF, span: Span{start, start}}, nil
	}
	c := l.src[start]
	switch {
	case isDigit(c), c == '.':
		for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '.') {
			l.pos++
		}
		return token{kind: tokenNum, span: Span{start, l.pos}}, nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokenIdent, span: Span{start, l.pos}}, nil
	}
	if start+2 <= len(l.src) {
		if k, ok := punct[l.src[start:start+2]]; ok {
			l.pos += 2
			return token{kind: k, span: Span{start, l.pos}}, nil
		}
	}
	if k, ok := punct[l.src[start:start+1]]; ok {
		l.pos++
		return token{kind: k, span: Span{start, l.pos}}, nil
	}
	_, sz := utf8.DecodeRuneInString(l.src[start:])
	span := Span{start, start + sz}
	return token{}, &Error{
		Kind: LexErrorKind,
		Msg:  "unexpected character " + strconv.Quote(l.source(span)),
		Span: span,
	}
}

// skip advances past whitespace and comments.
func (l *lexer) skip() error {
	for l.pos < len(l.src) {
		rest := l.src[l.pos:]
		switch {
		case isSpace(rest[0]):
			l.pos++
		case strings.HasPrefix(rest, "//"), strings.HasPrefix(rest, `\\`):
			k := strings.IndexByte(rest, '\n')
			if k < 0 {
				l.pos = len(l.src)
				return nil
			}
			l.pos += k + 1
		case strings.HasPrefix(rest, "/*"):
			k := strings.Index(rest[2:], "*/")
			if k < 0 {
				return &Error{
					Kind: LexErrorKind,
					Msg:  "unterminated block comment",
					Span: Span{l.pos, len(l.src)},
				}
			}
			l.pos += k + 4
		default:
			return nil
		}
	}
	return nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
