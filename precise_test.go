package eel

import (
	"math"
	"testing"
)

func TestPreciseFuncs(t *testing.T) {
	cases := []struct {
		name string
		args []float64
		want float64
	}{
		{"exp", []float64{0}, 1},
		{"exp", []float64{1}, math.E},
		{"exp", []float64{-1000}, 0},
		{"exp", []float64{1000}, math.Inf(1)},
		{"log", []float64{1}, 0},
		{"log", []float64{math.E}, 1},
		{"log", []float64{0}, math.Inf(-1)},
		{"log10", []float64{1000}, 3},
		{"log10", []float64{1e-300}, -300},
		{"pow", []float64{2, 0.5}, math.Sqrt2},
		{"pow", []float64{10, 22}, 1e22},
		{"pow", []float64{-2, 3}, -8},
		{"pow", []float64{0, 0}, 1},
		{"sigmoid", []float64{0, 0}, 0.5},
		{"sigmoid", []float64{1, 2}, 0.8807970779778824},
		{"sigmoid", []float64{-1000, 1}, 0},
	}
	funcs := PreciseFuncs()
	env := NewEnv()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := funcs[c.name].Call(env, append([]float64(nil), c.args...))
			if got != c.want {
				t.Errorf("%s%v: want %v, got %v", c.name, c.args, c.want, got)
			}
		})
	}
}

func TestPreciseDomain(t *testing.T) {
	funcs := PreciseFuncs()
	env := NewEnv()
	if v := funcs["log"].Call(env, []float64{-1}); !math.IsNaN(v) {
		t.Errorf("log(-1) = %v", v)
	}
	if v := funcs["pow"].Call(env, []float64{-8, 0.5}); !math.IsNaN(v) {
		t.Errorf("pow(-8, 0.5) = %v", v)
	}
}

func TestPreciseMathOption(t *testing.T) {
	env := NewEnv(PreciseMath())
	v, err := EvalString("log10(1000)", env, "main")
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("log10(1000) with PreciseMath: want 3, got %v", v)
	}
}

func TestPreciseCloseToMath(t *testing.T) {
	funcs := PreciseFuncs()
	env := NewEnv()
	for x := 0.125; x < 100; x *= 1.7 {
		for name, f := range map[string]func(float64) float64{"exp": math.Exp, "log": math.Log, "log10": math.Log10} {
			got := funcs[name].Call(env, []float64{x})
			want := f(x)
			if math.Abs(got-want) > 4*math.Abs(math.Nextafter(want, math.Inf(1))-want) {
				t.Errorf("%s(%v): precise %v too far from %v", name, x, got, want)
			}
		}
	}
}
