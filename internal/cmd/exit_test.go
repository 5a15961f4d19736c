package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

func TestExitCodeName(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{oerrors.ExitSuccess, "Success"},
		{oerrors.ExitGeneralError, "General Error"},
		{oerrors.ExitValidationError, "Validation Error"},
		{oerrors.ExitKindMismatch, "Kind Mismatch"},
		{oerrors.ExitHeadlessPrompt, "Headless Prompt"},
		{oerrors.ExitNotFound, "Not Found"},
		{42, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeName(tt.code))
		})
	}
}
