package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zephyrtronium/eel"
)

type runCmd struct {
	Files  []string `arg:""        help:"Script files to evaluate, or '-' for stdin." optional:"" type:"existingfile"`
	Expr   []string `help:"Evaluate an expression. Repeatable." sep:"none" short:"e"`
	Pool   string   `default:"main" help:"Pool to evaluate in."   short:"p"`
	Format string   `default:"%g"   help:"Format for results."`
	Echo   bool     `help:"Print parse trees before results."`
	Lines  bool     `help:"Treat each input line as a separate program." short:"n"`
	Set    []string `help:"Set a pool global before running." placeholder:"NAME=EXPR" sep:"none"`
	Call   []string `help:"Call configured functions in order after running." placeholder:"NAME"`
	Print  []string `help:"Print pool globals after running." placeholder:"NAME"`
}

// program is one unit of source text to evaluate.
type program struct {
	name string
	src  string
}

func (r *runCmd) Run(ctx context.Context, a *app) error {
	env := a.newEnv()
	for _, s := range r.Set {
		if err := r.set(a, env, s); err != nil {
			return err
		}
	}
	progs, err := r.sources(a)
	if err != nil {
		return err
	}
	verb := r.Format + "\n"
	for _, p := range progs {
		if err := ctx.Err(); err != nil {
			return err
		}
		prog, err := a.parse(p.src)
		if err != nil {
			diagnose(a.errw, p.name, p.src, err, env.Funcs())
			return errReported
		}
		if r.Echo {
			fmt.Fprintf(a.out, "%v : ", prog)
		}
		v, err := env.Eval(prog, r.Pool)
		if err != nil {
			diagnose(a.errw, p.name, p.src, err, env.Funcs())
			return errReported
		}
		a.log.DebugContext(ctx, "evaluated", slog.String("program", p.name), slog.Float64("result", v))
		fmt.Fprintf(a.out, verb, v)
	}
	if len(r.Call) != 0 {
		m, err := a.cfg.module(a, env)
		if err != nil {
			return err
		}
		for _, name := range r.Call {
			v, err := m.Call(name)
			if err != nil {
				fmt.Fprintf(a.errw, "%s: %v\n", name, err)
				return errReported
			}
			fmt.Fprintf(a.out, verb, v)
		}
	}
	for _, name := range r.Print {
		fmt.Fprintf(a.out, "%s = "+verb, strings.ToLower(name), env.Var(r.Pool, name))
	}
	return nil
}

// set evaluates a NAME=EXPR definition and stores it as a global.
func (r *runCmd) set(a *app, env *eel.Env, def string) error {
	name, expr, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, def)
	}
	v, err := eel.EvalString(expr, env, r.Pool, a.quirks)
	if err != nil {
		diagnose(a.errw, "--set "+name, expr, err, env.Funcs())
		return errReported
	}
	env.SetVar(r.Pool, name, v)
	return nil
}

// sources collects the programs to run. With no files, expressions, or calls,
// the program is read from stdin.
func (r *runCmd) sources(a *app) ([]program, error) {
	files := r.Files
	if len(files) == 0 && len(r.Expr) == 0 && len(r.Call) == 0 {
		files = []string{"-"}
	}
	var progs []program
	for _, f := range files {
		src, err := readSource(a.in, f)
		if err != nil {
			return nil, err
		}
		name := f
		if f == "-" {
			name = "<stdin>"
		}
		progs = append(progs, r.split(name, src)...)
	}
	for i, e := range r.Expr {
		progs = append(progs, program{name: fmt.Sprintf("-e#%d", i+1), src: e})
	}
	return progs, nil
}

// split divides src into one program per nonblank line if r.Lines is set.
func (r *runCmd) split(name, src string) []program {
	if !r.Lines {
		return []program{{name: name, src: src}}
	}
	var progs []program
	for i, line := range strings.Split(src, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		progs = append(progs, program{name: fmt.Sprintf("%s:%d", name, i+1), src: line})
	}
	return progs
}
