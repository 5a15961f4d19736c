package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bcgov/nr-repository-composer/internal/report"
)

// NewDocsCmd creates the docs command group.
func NewDocsCmd(g *globals) *cobra.Command {
	c := &cobra.Command{
		Use:   "docs",
		Short: "Generate documentation fragments",
	}
	c.AddCommand(newDocsNextStepsCmd(g))
	return c
}

func newDocsNextStepsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "next-steps <generator>",
		Short: "Print the suggested next steps of a generator as markdown",
		Long: `Print the "Suggested Next Steps" section of a generator as markdown for
the README. Generator patterns such as gh-*-build are expanded against the
registered generators and linked to their README sections.`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			def, err := g.registry.Lookup(args[0])
			if err != nil {
				return exitError(c, err)
			}
			if def.Report == nil {
				return nil
			}

			var names []string
			for _, d := range g.registry.Visible() {
				names = append(names, d.Name)
			}
			anchor := func(name string) string {
				d, err := g.registry.Lookup(name)
				if err != nil {
					return ""
				}
				return d.Anchor
			}
			fmt.Fprint(c.OutOrStdout(), report.NextStepsMarkdown(def.Name, *def.Report, names, anchor))
			return nil
		},
	}
}
