package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tebeka/atexit"

	"github.com/matzehuels/mergeviz/internal/cli"
	"github.com/matzehuels/mergeviz/pkg/fault"
)

func main() {
	defer fault.Recover(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	atexit.Exit(run(ctx))
}

func run(ctx context.Context) int {
	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	cli.Report(c.Out, os.Stderr, err)
	return cli.ExitCode(err)
}
