package main

import (
	"context"
	"fmt"

	"github.com/zephyrtronium/eel"
)

type checkCmd struct {
	Files []string `arg:"" help:"Script files to check, or '-' for stdin." type:"existingfile"`
	Quiet bool     `help:"Print only diagnostics." short:"q"`
}

func (c *checkCmd) Run(ctx context.Context, a *app) error {
	funcs := eel.Builtins(eel.DefaultFuncs())
	failed := 0
	for _, f := range c.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		src, err := readSource(a.in, f)
		if err != nil {
			return err
		}
		if _, err := a.parse(src); err != nil {
			diagnose(a.errw, f, src, err, funcs)
			failed++
			continue
		}
		if !c.Quiet {
			fmt.Fprintf(a.out, "%s: ok\n", f)
		}
	}
	if failed != 0 {
		return errReported
	}
	return nil
}
