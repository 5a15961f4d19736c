package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show nrc version information.

Displays the CLI version, build date, commit and Go version. The version is
stamped on every catalog document nrc saves.`,
		RunE: runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	output.Println(version.Get().String())
	return nil
}
