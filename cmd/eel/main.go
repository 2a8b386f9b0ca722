// Command eel evaluates EEL programs from files, the command line, an
// interactive prompt, or a watched script.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err := Run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Exit, os.Args[1:]...)
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "eel:", err)
		}
		os.Exit(1)
	}
}
