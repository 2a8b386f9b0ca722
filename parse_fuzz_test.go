package eel_test

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/eel"
)

func FuzzParse(f *testing.F) {
	f.Add("x")
	f.Add("g = ((6- -7.0)+ 3.0);")
	f.Add("megabuf(i) += if(a, (b; c), d)")
	f.Add("/* open")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := eel.Parse(s)
		b, err2 := eel.Parse(s)
		if (err == nil) != (err2 == nil) || !reflect.DeepEqual(a, b) {
			t.Fatalf("parsing %q is not deterministic", s)
		}
		if err != nil && !eel.IsSyntax(err) {
			t.Fatalf("parse error is not a syntax error: %v", err)
		}
	})
}
