package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
)

const (
	exitSuccess = 0
	exitError   = 1
)

func main() {
	// Set up panic recovery to handle unexpected errors gracefully
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", r)
			if verbose {
				fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			} else {
				fmt.Fprintln(os.Stderr, "Run with --verbose for stack trace")
			}
			os.Exit(exitError)
		}
	}()

	os.Exit(Execute(context.Background()))
}
