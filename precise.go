package eel

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// precisePrec is the working precision for correctly rounded builtins.
const precisePrec = 128

// PreciseFuncs returns builtins for exp, log, log10, pow, and sigmoid which
// compute at 128 bits of precision and round once to float64, so that their
// results do not depend on the platform's libm. Arguments for which the
// float64 result is not a finite normal number, or which are outside the
// real domain, are computed with package math instead.
func PreciseFuncs() map[string]Func {
	return map[string]Func{
		"exp":     Monadic(preciseExp),
		"log":     Monadic(preciseLog),
		"log10":   Monadic(preciseLog10),
		"pow":     Dyadic(precisePow),
		"sigmoid": Dyadic(preciseSigmoid),
	}
}

func bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(precisePrec).SetFloat64(x)
}

// normal returns whether x is finite, nonzero, and not subnormal.
func normal(x float64) bool {
	return x != 0 && !math.IsInf(x, 0) && !math.IsNaN(x) && math.Abs(x) >= 0x1p-1022
}

func preciseExp(x float64) float64 {
	if r := math.Exp(x); !normal(r) {
		return r
	}
	r, _ := bigfloat.Exp(new(big.Float).SetPrec(precisePrec), bigf(x)).Float64()
	return r
}

func preciseLog(x float64) float64 {
	if r := math.Log(x); !normal(r) || x <= 0 {
		return r
	}
	r, _ := bigfloat.Log(new(big.Float).SetPrec(precisePrec), bigf(x)).Float64()
	return r
}

func preciseLog10(x float64) float64 {
	if r := math.Log10(x); !normal(r) || x <= 0 {
		return r
	}
	z := new(big.Float).SetPrec(precisePrec)
	bigfloat.Log(z, bigf(x))
	ten := new(big.Float).SetPrec(precisePrec)
	bigfloat.Log(ten, bigf(10))
	r, _ := z.Quo(z, ten).Float64()
	return r
}

func precisePow(x, y float64) float64 {
	// bigfloat.Pow is only defined for positive bases.
	if r := math.Pow(x, y); !normal(r) || x <= 0 {
		return r
	}
	r, _ := bigfloat.Pow(new(big.Float).SetPrec(precisePrec), bigf(x), bigf(y)).Float64()
	return r
}

func preciseSigmoid(x, y float64) float64 {
	p := -x * y
	if e := math.Exp(p); !normal(e) {
		return sigmoid(x, y)
	}
	t := bigfloat.Exp(new(big.Float).SetPrec(precisePrec), bigf(p))
	t.Add(t, bigf(1))
	r, _ := t.Quo(bigf(1), t).Float64()
	return r
}
