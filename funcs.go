package eel

import (
	"math"
	"slices"
	"strings"
)

// Func is a pure numeric builtin. Control forms such as if, while, loop, and
// the buffer accessors are not Funcs; they are evaluated specially and cannot
// be replaced.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true. Call may modify the elements of args.
	Call(env *Env, args []float64) float64

	// CanCall returns whether the function can be called with n arguments.
	// Calling a function with an argument count for which CanCall is false
	// is an evaluation error.
	CanCall(n int) bool
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(env *Env, args []float64) float64 {
	return m.f(args[0])
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(x float64) float64) Func {
	return monadic{f}
}

type dyadic struct {
	f func(float64, float64) float64
}

func (d dyadic) Call(env *Env, args []float64) float64 {
	return d.f(args[0], args[1])
}

func (d dyadic) CanCall(n int) bool {
	return n == 2
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(x, y float64) float64) Func {
	return dyadic{f}
}

type randfn struct{}

func (randfn) Call(env *Env, args []float64) float64 {
	return env.rng.Float64() * args[0]
}

func (randfn) CanCall(n int) bool {
	return n == 1
}

var globalfuncs = map[string]Func{
	"abs":   Monadic(math.Abs),
	"sqrt":  Monadic(func(x float64) float64 { return math.Sqrt(math.Abs(x)) }),
	"sqr":   Monadic(func(x float64) float64 { return x * x }),
	"int":   Monadic(math.Floor),
	"floor": Monadic(math.Floor),
	"ceil":  Monadic(math.Ceil),
	"sign":  Monadic(sign),
	"bnot":  Monadic(func(x float64) float64 { return bool64(!truthy(x)) }),

	"min":   Dyadic(math.Min),
	"max":   Dyadic(math.Max),
	"above": Dyadic(func(x, y float64) float64 { return bool64(x > y) }),
	"below": Dyadic(func(x, y float64) float64 { return bool64(x < y) }),
	"equal": Dyadic(func(x, y float64) float64 { return bool64(equal(x, y)) }),
	"bor":   Dyadic(func(x, y float64) float64 { return bool64(truthy(x) || truthy(y)) }),
	"band":  Dyadic(func(x, y float64) float64 { return bool64(truthy(x) && truthy(y)) }),

	"sin":     Monadic(math.Sin),
	"cos":     Monadic(math.Cos),
	"tan":     Monadic(math.Tan),
	"asin":    Monadic(math.Asin),
	"acos":    Monadic(math.Acos),
	"atan":    Monadic(math.Atan),
	"atan2":   Dyadic(math.Atan2),
	"pow":     Dyadic(math.Pow),
	"exp":     Monadic(math.Exp),
	"log":     Monadic(math.Log),
	"log10":   Monadic(math.Log10),
	"sigmoid": Dyadic(sigmoid),
	"rand":    randfn{},
}

// DefaultFuncs returns a copy of the default builtin registry. The result may
// be modified and passed to EnvFuncs.
func DefaultFuncs() map[string]Func {
	m := make(map[string]Func, len(globalfuncs))
	for k, v := range globalfuncs {
		m[k] = v
	}
	return m
}

// specialForms are the names whose arguments are not all evaluated
// unconditionally, or which address the environment rather than values.
var specialForms = map[string]bool{
	"if":       true,
	"while":    true,
	"loop":     true,
	"exec2":    true,
	"exec3":    true,
	"assign":   true,
	"megabuf":  true,
	"gmegabuf": true,
}

// Builtins returns the sorted names of every function callable under funcs,
// including the control forms.
func Builtins(funcs map[string]Func) []string {
	names := make([]string, 0, len(funcs)+len(specialForms))
	for k := range specialForms {
		names = append(names, k)
	}
	for k, v := range funcs {
		if v != nil && !specialForms[k] {
			names = append(names, strings.ToLower(k))
		}
	}
	slices.Sort(names)
	return names
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func sigmoid(x, y float64) float64 {
	t := 1 + math.Exp(-x*y)
	if math.Abs(t) > Epsilon {
		return 1 / t
	}
	return 0
}
