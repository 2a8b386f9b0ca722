package eel

import (
	"context"
	"log/slog"
	"math"
	"strconv"
)

// Epsilon is the tolerance for truthiness and equality. A value is true if
// its magnitude is at least Epsilon, and two values are equal if they differ
// by less than Epsilon.
const Epsilon = 1e-5

// MaxIterations is the most times a while loop evaluates its condition.
const MaxIterations = 1 << 20

// frame is the state of one evaluation.
type frame struct {
	env    *Env
	name   string
	pool   *pool
	locals map[string]float64
}

// Eval evaluates a program under the named pool and returns the value of its
// last top-level expression, or 0 if it has none. Globals of the pool and
// both buffers persist in env after Eval returns. Locals do not.
func (env *Env) Eval(p *Program, pool string) (float64, error) {
	f := frame{
		env:    env,
		name:   pool,
		pool:   env.pool(pool),
		locals: make(map[string]float64),
	}
	return f.block(p.Body)
}

// EvalString is a shortcut to parse and evaluate source text.
func EvalString(src string, env *Env, pool string, opts ...ParseOption) (float64, error) {
	p, err := Parse(src, opts...)
	if err != nil {
		return 0, err
	}
	return env.Eval(p, pool)
}

func (f *frame) lookup(name string) float64 {
	if f.pool.globals[name] {
		return f.pool.vars[name]
	}
	return f.locals[name]
}

func (f *frame) store(name string, v float64) {
	if f.pool.globals[name] {
		f.pool.vars[name] = v
		return
	}
	f.locals[name] = v
}

func (f *frame) eval(e Expr) (float64, error) {
	switch e := e.(type) {
	case *NumberLiteral:
		return e.Value, nil
	case *Identifier:
		return f.lookup(e.Name), nil
	case *UnaryExpr:
		v, err := f.eval(e.Operand)
		if err != nil {
			return 0, err
		}
		switch e.Op {
		case UnaryPlus:
			return v, nil
		case UnaryMinus:
			return -v, nil
		case UnaryNot:
			return bool64(!truthy(v)), nil
		}
		panic("eel: invalid unary operator " + e.Op.String())
	case *BinaryExpr:
		return f.binary(e)
	case *Assignment:
		return f.assign(e)
	case *Call:
		return f.call(e)
	case *Block:
		return f.block(e)
	default:
		panic("eel: invalid AST node")
	}
}

func (f *frame) block(b *Block) (float64, error) {
	var r float64
	for _, e := range b.Body {
		v, err := f.eval(e)
		if err != nil {
			return 0, err
		}
		r = v
	}
	return r, nil
}

func (f *frame) binary(e *BinaryExpr) (float64, error) {
	l, err := f.eval(e.Left)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case OpAnd:
		if !truthy(l) {
			return 0, nil
		}
		r, err := f.eval(e.Right)
		return bool64(truthy(r)), err
	case OpOr:
		if truthy(l) {
			return 1, nil
		}
		r, err := f.eval(e.Right)
		return bool64(truthy(r)), err
	}
	r, err := f.eval(e.Right)
	if err != nil {
		return 0, err
	}
	return arith(e.Op, l, r), nil
}

// arith applies a strict binary operator.
func arith(op BinaryOp, l, r float64) float64 {
	switch op {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return div(l, r)
	case OpMod:
		return mod(l, r)
	case OpPow:
		return math.Pow(l, r)
	case OpEq:
		return bool64(equal(l, r))
	case OpNe:
		return bool64(!equal(l, r))
	case OpLt:
		return bool64(l < r)
	case OpLe:
		return bool64(l <= r)
	case OpGt:
		return bool64(l > r)
	case OpGe:
		return bool64(l >= r)
	case OpBitOr:
		return float64(toInt64(l) | toInt64(r))
	case OpBitAnd:
		return float64(toInt64(l) & toInt64(r))
	}
	panic("eel: invalid binary operator " + op.String())
}

// compound maps a compound assignment operator to its binary operator.
func compound(op AssignOp) BinaryOp {
	switch op {
	case AssignAdd:
		return OpAdd
	case AssignSub:
		return OpSub
	case AssignMul:
		return OpMul
	case AssignDiv:
		return OpDiv
	case AssignMod:
		return OpMod
	}
	panic("eel: not a compound assignment: " + op.String())
}

func (f *frame) assign(e *Assignment) (float64, error) {
	switch t := e.Target.(type) {
	case *Identifier:
		if e.Op == AssignSet {
			v, err := f.eval(e.Value)
			if err != nil {
				return 0, err
			}
			f.store(t.Name, v)
			return v, nil
		}
		prior := f.lookup(t.Name)
		v, err := f.eval(e.Value)
		if err != nil {
			return 0, err
		}
		v = arith(compound(e.Op), prior, v)
		f.store(t.Name, v)
		return v, nil
	case *Call:
		return f.assignBuffer(t, e.Op, e.Value)
	default:
		panic("eel: invalid assignment target")
	}
}

// assignBuffer stores to megabuf or gmegabuf. For plain assignment, the value
// is evaluated before the index. For compound assignment, the index is
// evaluated first, then the prior value is read, then the value is evaluated.
func (f *frame) assignBuffer(c *Call, op AssignOp, value Expr) (float64, error) {
	if c.Name.Name != "megabuf" && c.Name.Name != "gmegabuf" {
		return 0, evalError(c.Name.Span, "The only function calls which may be assigned to are `gmegabuf()` and `megabuf()`.")
	}
	if len(c.Args) != 1 {
		return 0, evalError(c.Name.Span, "Expected 1 argument when assigning to a buffer but got "+strconv.Itoa(len(c.Args))+".")
	}
	if op == AssignSet {
		v, err := f.eval(value)
		if err != nil {
			return 0, err
		}
		buf, i, err := f.slot(c)
		if err != nil {
			return 0, err
		}
		if !buf.Set(i, v) {
			f.discarded(c, i)
			return 0, nil
		}
		return v, nil
	}
	buf, i, err := f.slot(c)
	if err != nil {
		return 0, err
	}
	prior := buf.Get(i)
	v, err := f.eval(value)
	if err != nil {
		return 0, err
	}
	v = arith(compound(op), prior, v)
	if i < 0 {
		f.discarded(c, i)
		if f.env.quirks.Has(QuirkBufferCompoundOutOfRange) {
			return 0, nil
		}
		return v, nil
	}
	if !f.env.quirks.Has(QuirkBufferCompoundNoStore) {
		buf.Set(i, v)
	}
	return v, nil
}

// slot evaluates the index argument of a buffer call and resolves the buffer
// it addresses. The index is -1 if it is out of range.
func (f *frame) slot(c *Call) (*Buffer, int, error) {
	v, err := f.eval(c.Args[0])
	if err != nil {
		return nil, 0, err
	}
	i := bufferIndex(v)
	if c.Name.Name == "megabuf" {
		return f.pool.megabuf, i, nil
	}
	if f.env.quirks.Has(QuirkBufferAliasing) && i >= 0 && i+AliasOffset < BufferSize {
		return f.pool.megabuf, i + AliasOffset, nil
	}
	return f.env.gmegabuf, i, nil
}

func (f *frame) discarded(c *Call, i int) {
	ctx := context.Background()
	if f.env.log.Enabled(ctx, slog.LevelDebug) {
		f.env.log.DebugContext(ctx, "buffer store out of range",
			slog.String("pool", f.name),
			slog.String("buffer", c.Name.Name),
			slog.Int("offset", c.Name.Span.Start),
		)
	}
}

func (f *frame) call(c *Call) (float64, error) {
	name := c.Name.Name
	if specialForms[name] {
		return f.special(c)
	}
	fn := f.env.funcs[name]
	if fn == nil {
		return 0, evalError(c.Name.Span, strconv.Quote(name)+" is not defined.")
	}
	if !fn.CanCall(len(c.Args)) {
		return 0, evalError(c.Name.Span, "cannot call `"+name+"()` with "+strconv.Itoa(len(c.Args))+" arguments")
	}
	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := f.eval(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return fn.Call(f.env, args), nil
}

// arity checks the argument count of a control form.
func arity(c *Call, n int) error {
	got := len(c.Args)
	switch {
	case got < n:
		return evalError(c.Name.Span, "Too few arguments passed to `"+c.Name.Name+"()`. Expected "+strconv.Itoa(n)+" but only got "+strconv.Itoa(got)+".")
	case got > n:
		return evalError(c.Name.Span, "Too many arguments passed to `"+c.Name.Name+"()`. Expected "+strconv.Itoa(n)+" but got "+strconv.Itoa(got)+".")
	}
	return nil
}

// special evaluates the control forms and buffer reads.
func (f *frame) special(c *Call) (float64, error) {
	switch c.Name.Name {
	case "if":
		if err := arity(c, 3); err != nil {
			return 0, err
		}
		v, err := f.eval(c.Args[0])
		if err != nil {
			return 0, err
		}
		if truthy(v) {
			return f.eval(c.Args[1])
		}
		return f.eval(c.Args[2])
	case "while":
		if err := arity(c, 1); err != nil {
			return 0, err
		}
		for i := 0; i < MaxIterations; i++ {
			v, err := f.eval(c.Args[0])
			if err != nil {
				return 0, err
			}
			if !truthy(v) {
				return 0, nil
			}
		}
		f.env.log.DebugContext(context.Background(), "while loop reached iteration cap",
			slog.String("pool", f.name),
			slog.Int("cap", MaxIterations),
			slog.Int("offset", c.Name.Span.Start),
		)
		return 0, nil
	case "loop":
		if err := arity(c, 2); err != nil {
			return 0, err
		}
		n, err := f.eval(c.Args[0])
		if err != nil {
			return 0, err
		}
		// NaN compares false here, so it runs zero times.
		for k := math.Floor(n); k >= 1; k-- {
			if _, err := f.eval(c.Args[1]); err != nil {
				return 0, err
			}
		}
		return 0, nil
	case "exec2", "exec3":
		n := 2
		if c.Name.Name == "exec3" {
			n = 3
		}
		if err := arity(c, n); err != nil {
			return 0, err
		}
		return f.block(&Block{Body: c.Args})
	case "assign":
		if err := arity(c, 2); err != nil {
			return 0, err
		}
		id, ok := c.Args[0].(*Identifier)
		if !ok {
			return 0, evalError(c.Name.Span, "Expected the first argument of `assign()` to be an identifier.")
		}
		v, err := f.eval(c.Args[1])
		if err != nil {
			return 0, err
		}
		f.store(id.Name, v)
		return v, nil
	case "megabuf", "gmegabuf":
		if err := arity(c, 1); err != nil {
			return 0, err
		}
		buf, i, err := f.slot(c)
		if err != nil {
			return 0, err
		}
		return buf.Get(i), nil
	}
	panic("eel: unhandled control form " + c.Name.Name)
}

// truthy returns whether v is true under the language's epsilon rule.
func truthy(v float64) bool {
	return math.Abs(v) >= Epsilon
}

func equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

func bool64(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// div divides, yielding 0 for a zero divisor.
func div(l, r float64) float64 {
	if r == 0 {
		return 0
	}
	return l / r
}

// mod truncates both operands to integers and returns the remainder with the
// sign of the dividend, or 0 if the truncated divisor is 0.
func mod(l, r float64) float64 {
	d := math.Trunc(r)
	if d == 0 || math.IsNaN(d) {
		return 0
	}
	return math.Mod(math.Trunc(l), d)
}

// toInt64 truncates v to an integer, saturating at the int64 range. NaN is 0.
func toInt64(v float64) int64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(v)
	}
}
