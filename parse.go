package eel

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Program = Block EOF
// Block = { ';' } [ Expr { ';' { ';' } Expr } ] { ';' }
// Expr = Prefix { binop Expr }
// Prefix = num | ident | ident assignop Expr | Call | Call assignop Expr
//        | '(' Block ')' | ('+' | '-' | '!') Prefix
// Call = ident '(' [ Block { ',' Block } ] ')'

// Parse parses the source text of one function body. The given options are
// applied in order.
func Parse(src string, opts ...ParseOption) (*Program, error) {
	var ctx parsectx
	for _, opt := range opts {
		if opt != nil {
			ctx = opt.parseOption(ctx)
		}
	}
	p := parser{
		scan: lex(src),
		ctx:  ctx,
		tok:  token{kind: tokenNone},
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.expect(tokenSOF); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokenEOF); err != nil {
		return nil, err
	}
	return &Program{Body: body}, nil
}

// ParseReader reads all of r and parses it as one function body.
func ParseReader(r io.Reader, opts ...ParseOption) (*Program, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(b), opts...)
}

type parser struct {
	scan *lexer
	ctx  parsectx
	// tok is the lookahead token.
	tok token
}

func (p *parser) advance() error {
	tok, err := p.scan.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected(kind.String())
	}
	return p.advance()
}

// unexpected creates a syntax error for the lookahead token.
func (p *parser) unexpected(want string) error {
	return syntaxError(p.tok.span, "Expected "+want+" but found "+p.tok.kind.String())
}

// startsExpr returns whether the lookahead token can begin an expression.
func (p *parser) startsExpr() bool {
	switch p.tok.kind {
	case tokenNum, tokenIdent, tokenOpenParen, tokenPlus, tokenMinus, tokenBang:
		return true
	default:
		return false
	}
}

// parseBlock parses expressions separated by semicolons. Runs of semicolons,
// including leading and trailing ones, are skipped. parseBlock stops at the
// first token which can neither start an expression nor separate one.
func (p *parser) parseBlock() (*Block, error) {
	b := &Block{}
	for {
		for p.tok.kind == tokenSemi {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if !p.startsExpr() {
			return b, nil
		}
		e, err := p.parseExpr(exprprec)
		if err != nil {
			return nil, err
		}
		b.Body = append(b.Body, e)
		if p.tok.kind != tokenSemi {
			return b, nil
		}
	}
}

// parseExpr parses an expression whose infix operators all bind more tightly
// than until.
func (p *parser) parseExpr(until operator) (Expr, error) {
	lhs, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		op := binop(p.tok.kind)
		if op.op == 0 || !op.moreBinding(until) {
			return lhs, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpr(op)
		if err != nil {
			return nil, err
		}
		lhs = &BinaryExpr{Op: op.op, Left: lhs, Right: rhs}
	}
}

// parsePrefix parses a number, a variable, an assignment, a call, a
// parenthesized block, or a unary operator applied to a prefix expression.
func (p *parser) parsePrefix() (Expr, error) {
	switch p.tok.kind {
	case tokenNum:
		return p.parseNumber()
	case tokenIdent:
		return p.parseIdentExpr()
	case tokenOpenParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		b, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokenCloseParen); err != nil {
			return nil, err
		}
		return b, nil
	case tokenPlus, tokenMinus, tokenBang:
		op := unop(p.tok.kind)
		if err := p.advance(); err != nil {
			return nil, err
		}
		// Unary operators bind more tightly than any infix operator, so
		// the operand is only a prefix expression.
		e, err := p.parsePrefix()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Operand: e}, nil
	default:
		return nil, p.unexpected("an expression")
	}
}

func (p *parser) parseNumber() (Expr, error) {
	span := p.tok.span
	text := p.scan.source(span)
	s := text
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &Error{
			Kind: NumberErrorKind,
			Msg:  "Could not parse " + strconv.Quote(text) + " to a number",
			Span: span,
		}
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &NumberLiteral{Value: v}, nil
}

// parseIdentExpr parses an expression beginning with an identifier: a
// variable, a call, or an assignment to either.
func (p *parser) parseIdentExpr() (Expr, error) {
	id := &Identifier{
		Name: strings.ToLower(p.scan.source(p.tok.span)),
		Span: p.tok.span,
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	var target Expr = id
	if p.tok.kind == tokenOpenParen {
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		target = &Call{Name: id, Args: args}
	}
	op := assignop(p.tok.kind)
	if op == 0 {
		return target, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	// The value begins a new expression, so assignment is right-associative
	// and has the lowest precedence.
	v, err := p.parseExpr(exprprec)
	if err != nil {
		return nil, err
	}
	return &Assignment{Target: target, Op: op, Value: v}, nil
}

// parseArgs parses a parenthesized, comma-separated argument list. The
// lookahead token must be the open paren.
func (p *parser) parseArgs() ([]Expr, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.tok.kind == tokenCloseParen {
		return nil, p.advance()
	}
	var args []Expr
	for {
		a, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch p.tok.kind {
		case tokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokenCloseParen:
			return args, p.advance()
		default:
			return nil, p.unexpected(", or )")
		}
	}
}

// parseArg parses one function argument. An argument is a block unless
// QuirkNoBlockArguments is set. A block of one expression is returned as that
// expression.
func (p *parser) parseArg() (Expr, error) {
	if p.ctx.quirks.Has(QuirkNoBlockArguments) {
		if !p.startsExpr() {
			return nil, p.unexpected("an expression")
		}
		return p.parseExpr(exprprec)
	}
	if !p.startsExpr() && p.tok.kind != tokenSemi {
		return nil, p.unexpected("an expression")
	}
	start := p.tok.span
	b, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	switch len(b.Body) {
	case 0:
		return nil, syntaxError(start, "Expected an expression but found "+p.tok.kind.String())
	case 1:
		return b.Body[0], nil
	default:
		return b, nil
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the operator to use when this precedence is selected.
	op BinaryOp
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets the binary operator for a token kind. If there is no such
// operator, the result has an op of 0.
func binop(k tokenKind) operator {
	switch k {
	case tokenAmpAmp:
		return operator{1, false, OpAnd}
	case tokenPipePipe:
		return operator{1, false, OpOr}
	case tokenPipe:
		return operator{2, false, OpBitOr}
	case tokenAmp:
		return operator{3, false, OpBitAnd}
	case tokenEqEq:
		return operator{4, false, OpEq}
	case tokenBangEq:
		return operator{4, false, OpNe}
	case tokenLess:
		return operator{4, false, OpLt}
	case tokenLessEq:
		return operator{4, false, OpLe}
	case tokenGreater:
		return operator{4, false, OpGt}
	case tokenGreaterEq:
		return operator{4, false, OpGe}
	case tokenPlus:
		return operator{5, false, OpAdd}
	case tokenMinus:
		return operator{5, false, OpSub}
	case tokenStar:
		return operator{6, false, OpMul}
	case tokenSlash:
		return operator{6, false, OpDiv}
	case tokenPercent:
		return operator{7, false, OpMod}
	case tokenCaret:
		return operator{7, false, OpPow}
	default:
		return operator{}
	}
}

func unop(k tokenKind) UnaryOp {
	switch k {
	case tokenPlus:
		return UnaryPlus
	case tokenMinus:
		return UnaryMinus
	case tokenBang:
		return UnaryNot
	default:
		panic("eel: not a unary operator: " + k.String())
	}
}

func assignop(k tokenKind) AssignOp {
	switch k {
	case tokenEq:
		return AssignSet
	case tokenPlusEq:
		return AssignAdd
	case tokenMinusEq:
		return AssignSub
	case tokenStarEq:
		return AssignMul
	case tokenSlashEq:
		return AssignDiv
	case tokenPercentEq:
		return AssignMod
	default:
		return 0
	}
}

// exprprec is the precedence required to parse an entire expression.
var exprprec = operator{0, false, 0}
