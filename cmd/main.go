package main

import (
	"context"
	"os"

	"github.com/sprintloop/patchkit/internal/cli"
)

// main delegates to the CLI runner so the command stays testable.
func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
