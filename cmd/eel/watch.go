package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/xxh3"

	"github.com/zephyrtronium/eel"
)

type watchCmd struct {
	File   string `arg:""         help:"Script file to watch." type:"existingfile"`
	Pool   string `default:"main" help:"Pool to evaluate in."  short:"p"`
	Format string `default:"%g"   help:"Format for results."`
}

func (w *watchCmd) Run(ctx context.Context, a *app) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	// Watch the directory so that files replaced by rename are still seen.
	path, err := filepath.Abs(w.File)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		return err
	}

	r := &reloader{a: a, env: a.newEnv(), pool: w.Pool, verb: w.Format + "\n"}
	r.load(ctx, path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			r.load(ctx, path)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			a.log.WarnContext(ctx, "watch error", slog.Any("error", err))
		}
	}
}

// reloader evaluates successive versions of a script against one
// environment.
type reloader struct {
	a    *app
	env  *eel.Env
	pool string
	verb string

	// hash is the xxh3 hash of the source of prog.
	hash uint64
	prog *eel.Program
}

func (r *reloader) load(ctx context.Context, path string) {
	src, err := readSource(nil, path)
	if err != nil {
		r.a.log.WarnContext(ctx, "read failed", slog.String("file", path), slog.Any("error", err))
		return
	}
	r.eval(ctx, path, src)
}

// eval evaluates src, reusing the previous parse if the source is unchanged.
// It returns whether evaluation succeeded.
func (r *reloader) eval(ctx context.Context, name, src string) bool {
	h := xxh3.HashString(src)
	if r.prog == nil || h != r.hash {
		p, err := r.a.parse(src)
		if err != nil {
			diagnose(r.a.errw, name, src, err, r.env.Funcs())
			return false
		}
		r.prog, r.hash = p, h
		r.a.log.DebugContext(ctx, "parsed", slog.String("file", name), slog.Uint64("hash", h))
	} else {
		r.a.log.DebugContext(ctx, "source unchanged", slog.String("file", name))
	}
	v, err := r.env.Eval(r.prog, r.pool)
	if err != nil {
		diagnose(r.a.errw, name, src, err, r.env.Funcs())
		return false
	}
	fmt.Fprintf(r.a.out, r.verb, v)
	return true
}
