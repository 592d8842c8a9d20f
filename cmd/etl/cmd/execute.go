package cmd

import (
	"errors"
	"fmt"
	"os"
)

// usageError marks flag-parsing failures so they exit with the usage code
// instead of the generic fatal one.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func Execute() int {
	root := newRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps errors to process exit codes: 2 for usage, 1 for every
// fatal error, missing config keys included.
func exitCode(err error) int {
	var usage *usageError
	if errors.As(err, &usage) {
		return 2
	}
	return 1
}
