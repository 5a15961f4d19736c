package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/output"
)

// exitError reports err on stderr once and wraps it with its exit code.
// main only sets the process status for errors marked as printed.
func exitError(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) && exitErr.Printed {
		return err
	}

	code := oerrors.ExitCodeFromError(err)
	printError(cmd.ErrOrStderr(), err)
	output.Debug("command failed", "exit", code, "reason", ExitCodeName(code))

	return &oerrors.ExitError{Err: err, Code: code, Printed: true}
}

// printError renders structured errors verbatim and everything else through
// the logger, with a hint for conditions the user can fix.
func printError(w io.Writer, err error) {
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		fmt.Fprint(w, detail.Error())
		return
	}

	hint := hintFor(err)
	if hint == "" {
		output.Error(err.Error())
		return
	}
	output.Error(err.Error(), "hint", hint)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, oerrors.ErrHeadless):
		return "run interactively or add the answers to the catalog document"
	case errors.Is(err, oerrors.ErrKindMismatch):
		return "run the generator from the directory that holds the matching catalog document"
	case errors.Is(err, oerrors.ErrMalformedDocument):
		return "fix the YAML syntax of the catalog document"
	default:
		return ""
	}
}

// flagError turns cobra flag parsing failures into usage errors.
func flagError(cmd *cobra.Command, err error) error {
	return exitError(cmd, oerrors.NewValidationError(
		err.Error(), "", "", fmt.Sprintf("see '%s --help'", cmd.CommandPath())))
}
