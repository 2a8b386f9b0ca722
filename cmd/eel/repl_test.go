package main

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/eel"
)

func TestIncomplete(t *testing.T) {
	cases := []struct {
		src  string
		want bool
	}{
		{"1 + 2", false},
		{"f(1", true},
		{"(1 +", true},
		{"if(a,\n(b;", true},
		{"1 +", false},
		{"1)", false},
		{"(1 $", false},
		{"(1 2", false},
	}
	for _, c := range cases {
		_, err := eel.Parse(c.src)
		if got := incomplete(c.src, err); got != c.want {
			t.Errorf("incomplete(%q): want %t, got %t (%v)", c.src, c.want, got, err)
		}
	}
}

func newSession() (*session, *strings.Builder, *strings.Builder) {
	var out, errw strings.Builder
	a := &app{out: &out, errw: &errw, cfg: new(Config)}
	return &session{a: a, env: a.newEnv(), pool: "main", verb: "%g\n"}, &out, &errw
}

func TestSessionExec(t *testing.T) {
	s, out, errw := newSession()
	inputs := []string{
		"x = 2",
		"x",
		":global x",
		"x = 3",
		"x * 2",
		":vars",
		":pool",
		":pool other",
		"x",
		":pool",
		"nope(1)",
		":bogus",
	}
	for _, in := range inputs {
		if s.exec(in) {
			t.Fatalf("%q ended the session", in)
		}
	}
	if want := "2\n0\n3\n6\nx = 3\nmain\n0\nother\n"; out.String() != want {
		t.Errorf("wrong output:\nwant %q\ngot  %q", want, out.String())
	}
	e := errw.String()
	if !strings.Contains(e, `"nope" is not defined.`) {
		t.Errorf("missing evaluation error in %q", e)
	}
	if !strings.Contains(e, "unknown command") {
		t.Errorf("missing unknown command error in %q", e)
	}
	for _, q := range []string{":q", " :quit ", ":QUIT"} {
		if !s.exec(q) {
			t.Errorf("%q did not end the session", q)
		}
	}
}

func TestSessionFuncs(t *testing.T) {
	s, out, _ := newSession()
	s.exec(":funcs")
	names := strings.Fields(out.String())
	if !reflect.DeepEqual(names, s.env.Funcs()) {
		t.Errorf("wrong function list: %v", names)
	}
}

func TestSessionComplete(t *testing.T) {
	s, _, _ := newSession()
	s.env.SetVar("main", "atmosphere", 1)
	cases := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"1 + ", nil},
		{"1 + sq", []string{"1 + sqr", "1 + sqrt"}},
		{"x = AT", []string{"x = atan", "x = atan2", "x = atmosphere"}},
		{"megabuf(gm", []string{"megabuf(gmegabuf"}},
		{"zz", nil},
	}
	for _, c := range cases {
		if got := s.complete(c.line); !reflect.DeepEqual(got, c.want) {
			t.Errorf("complete(%q): want %q, got %q", c.line, c.want, got)
		}
	}
}
