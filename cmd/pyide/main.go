// Package main is the entry point for the pyide editor.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dshills/pyide/internal/runner"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	// A program that ran and failed passes its exit status through; its
	// output already explains what happened.
	var exitErr *runner.ProcessExitError
	if errors.As(err, &exitErr) {
		if exitErr.Code > 0 {
			return exitErr.Code
		}
		return 1
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
