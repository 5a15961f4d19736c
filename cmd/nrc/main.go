// Package main is the entry point for the nrc CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/bcgov/nr-repository-composer/internal/cmd"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		var exitErr *oerrors.ExitError
		if errors.As(err, &exitErr) {
			// The command layer prints the errors it knows about.
			if !exitErr.Printed {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(exitErr.Code)
		}
		// Cobra's own failures (unknown command, bad flag on the root).
		fmt.Fprintln(os.Stderr, err)
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
