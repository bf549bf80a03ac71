package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/checkkit/internal/cli"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version)
	if err := root.ExecuteContext(ctx); err != nil {
		code := cli.ExitCode(err)
		// Validation failures are already reported on stdout.
		if code != cli.ExitValidation {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(code)
	}
}
