package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/bcgov/nr-repository-composer/internal/output"
)

// listEntry is the machine-readable form of one generator.
type listEntry struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind,omitempty"`
	Description string   `json:"description"`
	Arguments   []string `json:"arguments,omitempty"`
	Prompts     []string `json:"prompts,omitempty"`
	Hidden      bool     `json:"hidden,omitempty"`
}

// NewListCmd creates the list command.
func NewListCmd(g *globals) *cobra.Command {
	var (
		all        bool
		outputFlag string
	)

	c := &cobra.Command{
		Use:   "list",
		Short: "List available generators",
		Long: `List the generators nrc can run.

Generators that are only composed by other generators are hidden unless
--all is given.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			format, err := output.ParseFormatFlag(outputFlag, output.FormatTable, output.FormatYAML, output.FormatJSON)
			if err != nil {
				return exitError(c, err)
			}

			defs := g.registry.Visible()
			if all {
				defs = g.registry.Definitions()
			}

			if format == output.FormatTable {
				rows := make([]output.GeneratorRow, 0, len(defs))
				for _, d := range defs {
					rows = append(rows, output.GeneratorRow{
						Name:        d.Name,
						Kind:        string(d.Kind),
						Description: d.Description,
					})
				}
				fmt.Fprintln(c.OutOrStdout(), output.RenderGeneratorTable(rows))
				return nil
			}

			entries := make([]listEntry, 0, len(defs))
			for _, d := range defs {
				e := listEntry{
					Name:        d.Name,
					Kind:        string(d.Kind),
					Description: d.Description,
					Prompts:     d.PromptNames(),
					Hidden:      d.Hidden,
				}
				for _, a := range d.Arguments {
					e.Arguments = append(e.Arguments, a.Name)
				}
				entries = append(entries, e)
			}
			data, err := yaml.Marshal(entries)
			if err != nil {
				return exitError(c, fmt.Errorf("encoding generator list: %w", err))
			}
			if format == output.FormatJSON {
				if data, err = toJSON(data); err != nil {
					return exitError(c, err)
				}
			}
			_, err = c.OutOrStdout().Write(data)
			return exitError(c, err)
		},
	}
	c.Flags().BoolVar(&all, "all", false, "Include generators that are only composed")
	c.Flags().StringVarP(&outputFlag, "output", "o", "table", "Output format: table, yaml, json")
	return c
}
