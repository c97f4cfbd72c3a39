package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spboyer/archlab/internal/bitbudget"
	"github.com/spboyer/archlab/internal/outcome"
)

// Exit codes for different failure modes
const (
	ExitSuccess   = 0 // Command completed
	ExitDataError = 1 // Input data cannot produce a result (no outcomes, wrong parameter shape)
	ExitError     = 2 // Configuration or runtime error
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var typeErr *bitbudget.TypeError
	if errors.Is(err, outcome.ErrNoOutcomes) || errors.As(err, &typeErr) {
		return ExitDataError
	}

	return ExitError
}
