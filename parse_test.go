package eel

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestParseTree(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"semis", ";;;", ""},
		{"num", "1", "1"},
		{"dot-num", ".5", "0.5"},
		{"trailing-dot", "100.", "100"},
		{"ident", "x", "x"},
		{"ident-case", "FooBar", "foobar"},
		{"add", "1+2", "(1 + 2)"},
		{"sub-left", "1-2-3", "((1 - 2) - 3)"},
		{"mul-over-add", "1+2*3", "(1 + (2 * 3))"},
		{"add-under-mul", "1*2+3", "((1 * 2) + 3)"},
		{"pow-left", "2^2^4", "((2 ^ 2) ^ 4)"},
		{"mod-over-mul", "2*5%2", "(2 * (5 % 2))"},
		{"mod-mul", "2%5*2", "((2 % 5) * 2)"},
		{"mod-pow", "2%3^2", "((2 % 3) ^ 2)"},
		{"neg-pow", "-x^2", "((-x) ^ 2)"},
		{"double-neg", "- -1", "(-(-1))"},
		{"plus", "+1", "(+1)"},
		{"not-and", "!a && b", "((!a) && b)"},
		{"or-and", "a || b && c", "((a || b) && c)"},
		{"bitor-bitand", "a | b & c", "(a | (b & c))"},
		{"and-bitor", "a && b | c", "(a && (b | c))"},
		{"cmp-left", "a == b < c", "((a == b) < c)"},
		{"cmp-add", "1 + 2 == 3", "((1 + 2) == 3)"},
		{"ne", "a != b", "(a != b)"},
		{"le-ge", "a <= b >= c", "((a <= b) >= c)"},
		{"assign", "x = 1 + 2", "(x = (1 + 2))"},
		{"assign-right", "x = y = 3", "(x = (y = 3))"},
		{"assign-in-sum", "1 + x = 2", "(1 + (x = 2))"},
		{"compound", "x += 2 * 3", "(x += (2 * 3))"},
		{"compound-all", "a -= 1; b *= 2; c /= 3; d %= 4", "(a -= 1); (b *= 2); (c /= 3); (d %= 4)"},
		{"statements", "a; b;; c;", "a; b; c"},
		{"leading-semi", ";a", "a"},
		{"group", "(1)", "(1)"},
		{"group-block", "(1; 2)", "(1; 2)"},
		{"empty-group", "()", "()"},
		{"group-prec", "(1+2)*3", "((1 + 2) * 3)"},
		{"call", "sin(x)", "sin(x)"},
		{"call-case", "SIN(X)", "sin(x)"},
		{"call-empty", "f()", "f()"},
		{"call-args", "atan2(1, 2)", "atan2(1, 2)"},
		{"call-block-arg", "int(g = 5; g + 10.5)", "int(((g = 5); (g + 10.5)))"},
		{"call-semi-arg", "f(;1;)", "f(1)"},
		{"call-nested", "max(min(a, b), -c)", "max(min(a, b), (-c))"},
		{"buffer-assign", "megabuf(1) = 2", "(megabuf(1) = 2)"},
		{"buffer-compound", "gmegabuf(i) += 1", "(gmegabuf(i) += 1)"},
		{"call-assign", "sin(1) = 2", "(sin(1) = 2)"},
		{"comments", "1 /* two */ + // three\n 4", "(1 + 4)"},
		{"backslash-comment", "x \\\\ y\n", "x"},
		{"whitespace", " \t\n1\r\n", "1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if got := p.String(); got != c.want {
				t.Errorf("wrong tree for %q: want %s, got %s", c.src, c.want, got)
			}
		})
	}
}

func TestParseAST(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want *Program
	}{
		{"empty", "", &Program{Body: &Block{}}},
		{
			"assign-neg",
			"x = -1",
			&Program{Body: &Block{Body: []Expr{
				&Assignment{
					Target: &Identifier{Name: "x", Span: Span{0, 1}},
					Op:     AssignSet,
					Value:  &UnaryExpr{Op: UnaryMinus, Operand: &NumberLiteral{Value: 1}},
				},
			}}},
		},
		{
			"call",
			"F(a, 2)",
			&Program{Body: &Block{Body: []Expr{
				&Call{
					Name: &Identifier{Name: "f", Span: Span{0, 1}},
					Args: []Expr{
						&Identifier{Name: "a", Span: Span{2, 3}},
						&NumberLiteral{Value: 2},
					},
				},
			}}},
		},
		{
			"block-arg",
			"f(a; b)",
			&Program{Body: &Block{Body: []Expr{
				&Call{
					Name: &Identifier{Name: "f", Span: Span{0, 1}},
					Args: []Expr{
						&Block{Body: []Expr{
							&Identifier{Name: "a", Span: Span{2, 3}},
							&Identifier{Name: "b", Span: Span{5, 6}},
						}},
					},
				},
			}}},
		},
		{
			"two",
			"1; y",
			&Program{Body: &Block{Body: []Expr{
				&NumberLiteral{Value: 1},
				&Identifier{Name: "y", Span: Span{3, 4}},
			}}},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Parse(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(p, c.want) {
				t.Errorf("wrong AST for %q: want %v, got %v", c.src, c.want, p)
			}
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	srcs := []string{
		"x = 1; y = x * 2 + sin(x); megabuf(y) += 3",
		"while(i += 1; i < 10)",
		"if(a && !b, (c; d), e | f & g)",
	}
	for _, src := range srcs {
		a, err := Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("parsing %q twice gave different trees:\n%v\n%v", src, a, b)
		}
	}
}

func TestParseNumbers(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"0", 0},
		{"1", 1},
		{"1.5", 1.5},
		{".25", 0.25},
		{"7.", 7},
		{"0000123", 123},
		{strings.Repeat("9", 400), math.Inf(1)},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			p, err := Parse(c.src)
			if err != nil {
				t.Fatal(err)
			}
			n, ok := p.Body.Body[0].(*NumberLiteral)
			if !ok {
				t.Fatalf("not a number: %v", p)
			}
			if n.Value != c.want {
				t.Errorf("wrong value: want %g, got %g", c.want, n.Value)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind ErrorKind
		msg  string
		span Span
	}{
		{"trailing-op", "1 +", SyntaxErrorKind, "Expected an expression but found EOF", Span{3, 3}},
		{"open-paren", "(1", SyntaxErrorKind, "Expected CloseParen but found EOF", Span{2, 2}},
		{"close-paren", "1)", SyntaxErrorKind, "Expected EOF but found CloseParen", Span{1, 2}},
		{"juxtaposed", "1 2", SyntaxErrorKind, "Expected EOF but found Number", Span{2, 3}},
		{"assign-number", "1 = 2", SyntaxErrorKind, "Expected EOF but found Equal", Span{2, 3}},
		{"empty-arg", "f(,)", SyntaxErrorKind, "Expected an expression but found Comma", Span{2, 3}},
		{"trailing-comma", "f(1,)", SyntaxErrorKind, "Expected an expression but found CloseParen", Span{4, 5}},
		{"semis-arg", "f(;)", SyntaxErrorKind, "Expected an expression but found CloseParen", Span{2, 3}},
		{"open-call", "f(1", SyntaxErrorKind, "Expected , or ) but found EOF", Span{3, 3}},
		{"binary-start", "* 2", SyntaxErrorKind, "Expected EOF but found Asterisk", Span{0, 1}},
		{"assign-nothing", "x =", SyntaxErrorKind, "Expected an expression but found EOF", Span{3, 3}},
		{"bad-number", "1.2.3", NumberErrorKind, `Could not parse "1.2.3" to a number`, Span{0, 5}},
		{"bad-char", "1 + $", LexErrorKind, `unexpected character "$"`, Span{4, 5}},
		{"open-comment", "1 /*", LexErrorKind, "unterminated block comment", Span{2, 4}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := Parse(c.src)
			if err == nil {
				t.Fatalf("%q parsed without error: %v", c.src, p)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("wrong error type: %T", err)
			}
			if e.Kind != c.kind {
				t.Errorf("wrong kind: want %v, got %v", c.kind, e.Kind)
			}
			if e.Msg != c.msg {
				t.Errorf("wrong message: want %q, got %q", c.msg, e.Msg)
			}
			if e.Span != c.span {
				t.Errorf("wrong span: want %v, got %v", c.span, e.Span)
			}
			if !IsSyntax(err) {
				t.Errorf("IsSyntax false for %v", err)
			}
			if IsEval(err) {
				t.Errorf("IsEval true for %v", err)
			}
		})
	}
}

func TestParseNoBlockArguments(t *testing.T) {
	if _, err := Parse("f(1; 2)", QuirkNoBlockArguments); err == nil {
		t.Error("block argument parsed with QuirkNoBlockArguments")
	} else if e := err.(*Error); e.Msg != "Expected , or ) but found Semicolon" {
		t.Errorf("wrong message: %q", e.Msg)
	}
	if _, err := Parse("f(1, (2; 3))", QuirkNoBlockArguments); err != nil {
		t.Errorf("parenthesized block failed to parse: %v", err)
	}
	// Eval-time quirks do not affect parsing.
	if _, err := Parse("f(1; 2)", QuirkBufferAliasing|QuirkBufferCompoundNoStore); err != nil {
		t.Errorf("block argument failed to parse: %v", err)
	}
}

func TestParsingPreset(t *testing.T) {
	preset := ParsingPreset(nil, QuirkNoBlockArguments)
	if _, err := Parse("f(1; 2)", preset); err == nil {
		t.Error("preset did not carry QuirkNoBlockArguments")
	}
	if _, err := Parse("f(1; 2)", ParsingPreset()); err != nil {
		t.Errorf("empty preset rejected block argument: %v", err)
	}
}

func TestParseReader(t *testing.T) {
	p, err := ParseReader(strings.NewReader("a = 1;\nb = a + 1;\n"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p.String(), "(a = 1); (b = (a + 1))"; got != want {
		t.Errorf("wrong tree: want %s, got %s", want, got)
	}
}

func TestErrorString(t *testing.T) {
	_, err := Parse("1 +")
	if got, want := err.Error(), "3-3: syntax error: Expected an expression but found EOF"; got != want {
		t.Errorf("wrong error text: want %q, got %q", want, got)
	}
	if got := err.(*Error).Pos(); got != 3 {
		t.Errorf("wrong position: want 3, got %d", got)
	}
}
