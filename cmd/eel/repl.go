package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/eel"
)

const (
	promptMain  = "eel> "
	promptCont  = "...  "
	historyFile = ".eel_history"
)

type replCmd struct {
	Pool    string `default:"main" help:"Pool to evaluate in." short:"p"`
	Format  string `default:"%g"   help:"Format for results."`
	History bool   `default:"true" help:"Keep line history in ~/.eel_history." negatable:""`
}

func (r *replCmd) Run(ctx context.Context, a *app) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil && r.History {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	s := &session{a: a, env: a.newEnv(), pool: r.Pool, verb: r.Format + "\n"}
	ln.SetCompleter(s.complete)
	for ctx.Err() == nil {
		src, ok := readByParseProbe(ln, a.quirks)
		if !ok {
			fmt.Fprintln(a.out)
			return nil
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if s.exec(src) {
			return nil
		}
	}
	return ctx.Err()
}

// readByParseProbe reads lines until they form a complete program, as
// determined by whether parsing fails at the end of the input.
func readByParseProbe(ln *liner.State, quirks eel.Quirks) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() != 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return "", false
		}
		if b.Len() != 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src := b.String()
		if _, err := eel.Parse(src, quirks); !incomplete(src, err) {
			return src, true
		}
	}
}

// incomplete returns whether err from parsing src means more input could make
// it valid: a syntax error at the end of the input while a group or argument
// list is still open.
func incomplete(src string, err error) bool {
	var e *eel.Error
	if !errors.As(err, &e) || e.Kind != eel.SyntaxErrorKind {
		return false
	}
	return e.Span.Empty() && e.Span.Start == len(src) && strings.Count(src, "(") > strings.Count(src, ")")
}

// session is the state of an interactive prompt.
type session struct {
	a    *app
	env  *eel.Env
	pool string
	verb string
}

// exec evaluates one input or runs a colon command. It returns true if the
// session should end.
func (s *session) exec(src string) bool {
	if cmd, ok := strings.CutPrefix(strings.TrimSpace(src), ":"); ok {
		return s.command(cmd)
	}
	p, err := s.a.parse(src)
	if err != nil {
		diagnose(s.a.errw, "<input>", src, err, s.env.Funcs())
		return false
	}
	v, err := s.env.Eval(p, s.pool)
	if err != nil {
		diagnose(s.a.errw, "<input>", src, err, s.env.Funcs())
		return false
	}
	fmt.Fprintf(s.a.out, s.verb, v)
	return false
}

func (s *session) command(cmd string) bool {
	name, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "q", "quit":
		return true
	case "pool":
		if arg == "" {
			fmt.Fprintln(s.a.out, s.pool)
			break
		}
		s.pool = arg
	case "global":
		for _, g := range strings.Fields(arg) {
			s.env.SetVar(s.pool, g, s.env.Var(s.pool, g))
		}
	case "vars":
		for _, g := range s.env.GlobalNames(s.pool) {
			fmt.Fprintf(s.a.out, "%s = "+s.verb, g, s.env.Var(s.pool, g))
		}
	case "funcs":
		fmt.Fprintln(s.a.out, strings.Join(s.env.Funcs(), " "))
	default:
		fmt.Fprintln(s.a.errw, "unknown command; try :quit, :pool, :global, :vars, or :funcs")
	}
	return false
}

// complete completes the identifier at the end of line with function and
// global names.
func (s *session) complete(line string) []string {
	i := len(line)
	for i > 0 && isWordByte(line[i-1]) {
		i--
	}
	head, word := line[:i], strings.ToLower(line[i:])
	if word == "" {
		return nil
	}
	var r []string
	for _, c := range append(s.env.Funcs(), s.env.GlobalNames(s.pool)...) {
		if strings.HasPrefix(c, word) {
			r = append(r, head+c)
		}
	}
	return r
}

func isWordByte(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9'
}
