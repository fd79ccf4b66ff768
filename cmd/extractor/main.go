// Package main is the entry point for the rule-text extractor
package main

import (
	"fmt"
	"os"

	"github.com/KirkDiggler/rpg-ruletext/internal/errors"
)

// Exit codes
const (
	exitError       = 1
	exitUsage       = 2
	exitNoStore     = 3
	exitInterrupted = 130
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.IsInvalidArgument(err):
		return exitUsage
	case errors.IsFailedPrecondition(err):
		return exitNoStore
	case errors.IsCanceled(err), errors.IsDeadlineExceeded(err):
		return exitInterrupted
	default:
		return exitError
	}
}
