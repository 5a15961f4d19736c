package cmd

import (
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case oerrors.ExitSuccess:
		return "Success"
	case oerrors.ExitGeneralError:
		return "General Error"
	case oerrors.ExitValidationError:
		return "Validation Error"
	case oerrors.ExitKindMismatch:
		return "Kind Mismatch"
	case oerrors.ExitHeadlessPrompt:
		return "Headless Prompt"
	case oerrors.ExitNotFound:
		return "Not Found"
	default:
		return "Unknown"
	}
}
