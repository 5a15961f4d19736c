package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/config"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/output"
)

// NewCatalogCmd creates the catalog command group.
func NewCatalogCmd(g *globals) *cobra.Command {
	c := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the catalog document",
	}
	c.AddCommand(newCatalogShowCmd(g))
	return c
}

func newCatalogShowCmd(g *globals) *cobra.Command {
	var (
		outputFlag  string
		answersFlag bool
	)

	c := &cobra.Command{
		Use:   "show",
		Short: "Print the catalog document of the destination",
		Long: `Print the catalog document of the destination directory.

With --answers the mapped properties are printed instead of the raw
document, keyed by answer name.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			format, err := output.ParseFormatFlag(outputFlag, output.FormatYAML, output.FormatJSON)
			if err != nil {
				return exitError(c, err)
			}

			doc, err := g.loadCatalog()
			if err != nil {
				return exitError(c, err)
			}

			var data []byte
			if answersFlag {
				answers, err := catalog.Extract(doc, doc.Table())
				if err != nil {
					return exitError(c, err)
				}
				data, err = yaml.Marshal(answers)
				if err != nil {
					return exitError(c, fmt.Errorf("encoding answers: %w", err))
				}
			} else {
				data, err = doc.Bytes()
				if err != nil {
					return exitError(c, err)
				}
			}

			if format == output.FormatJSON {
				data, err = toJSON(data)
				if err != nil {
					return exitError(c, err)
				}
			}
			_, err = c.OutOrStdout().Write(data)
			return exitError(c, err)
		},
	}

	c.Flags().StringVarP(&outputFlag, "output", "o", "yaml", "Output format: yaml, json")
	c.Flags().BoolVar(&answersFlag, "answers", false, "Print the mapped answers instead of the document")
	return c
}

// loadCatalog reads the catalog document of the destination. Unlike a
// generator run, a missing document is an error here.
func (g *globals) loadCatalog() (*catalog.Document, error) {
	dir := g.dirFlag
	if dir == "" {
		dir = "."
	}
	name := g.catalogFile()
	path := filepath.Join(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError(
				"no catalog document in the destination", path,
				"run a generator such as 'nrc backstage' to create one")
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return catalog.Parse(path, data, "", catalog.OpenOptions{IgnoreKindMismatch: true})
}

func (g *globals) catalogFile() string {
	if g.config == nil || g.config.CatalogFile == "" {
		return config.DefaultCatalogFile
	}
	return g.config.CatalogFile
}

func toJSON(data []byte) ([]byte, error) {
	raw, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("formatting JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
