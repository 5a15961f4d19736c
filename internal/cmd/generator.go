package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
)

const groupGenerators = "generators"

// newGeneratorCmd exposes one registered generator as a subcommand.
// Positional args map onto the declared arguments and every option becomes
// a flag.
func newGeneratorCmd(g *globals, def *generator.Definition) *cobra.Command {
	c := &cobra.Command{
		Use:     def.Usage(),
		Short:   def.Description,
		Long:    generatorLong(def),
		GroupID: groupGenerators,
		Hidden:  def.Hidden,
		// bind reports argument count problems as validation errors.
		Args: cobra.ArbitraryArgs,
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := optionValues(c, def.Options)
			if err != nil {
				return exitError(c, err)
			}
			rt := g.runtime(c)
			err = rt.Run(c.Context(), generator.Invocation{
				Name:    def.Name,
				Args:    args,
				Options: opts,
			})
			return exitError(c, err)
		},
	}
	addOptionFlags(c, def.Options)
	return c
}

func generatorLong(def *generator.Definition) string {
	var b strings.Builder
	b.WriteString(def.Description)
	b.WriteString("\n")

	if def.Kind != "" {
		fmt.Fprintf(&b, "\nCatalog kind: %s\n", def.Kind)
	}
	if len(def.Arguments) > 0 {
		entries := make([]output.ListEntry, 0, len(def.Arguments))
		for _, a := range def.Arguments {
			desc := a.Description
			if a.Default != "" {
				desc += fmt.Sprintf(" (default %q)", a.Default)
			}
			entries = append(entries, output.ListEntry{Name: a.Name, Description: desc})
		}
		b.WriteString("\nArguments:\n")
		b.WriteString(output.RenderList(entries, "  ", 20))
	}
	if len(def.Prompts) > 0 {
		b.WriteString("\nPrompts:\n")
		b.WriteString(prompt.UsageText(def.Prompts))
	}
	return strings.TrimRight(b.String(), "\n")
}

// addOptionFlags registers a typed flag per option.
func addOptionFlags(c *cobra.Command, specs []generator.OptionSpec) {
	for _, s := range specs {
		switch s.Type {
		case generator.Bool:
			def, _ := s.Default.(bool)
			c.Flags().Bool(s.Name, def, s.Description)
		case generator.Int:
			def, _ := s.Default.(int)
			c.Flags().Int(s.Name, def, s.Description)
		default:
			def, _ := s.Default.(string)
			c.Flags().String(s.Name, def, s.Description)
		}
	}
}

// optionValues collects the flags the user set. Unset options are left to
// the definition defaults.
func optionValues(c *cobra.Command, specs []generator.OptionSpec) (generator.Options, error) {
	opts := generator.Options{}
	for _, s := range specs {
		if !c.Flags().Changed(s.Name) {
			continue
		}
		var (
			v   any
			err error
		)
		switch s.Type {
		case generator.Bool:
			v, err = c.Flags().GetBool(s.Name)
		case generator.Int:
			v, err = c.Flags().GetInt(s.Name)
		default:
			v, err = c.Flags().GetString(s.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading --%s: %w", s.Name, err)
		}
		opts[s.Name] = v
	}
	return opts, nil
}
