package generators

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/report"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

var ghCommonMonoBuild = &generator.Definition{
	Name:        GHCommonMonoBuild,
	Description: "Create the build orchestration workflow for a monorepo",
	Kind:        catalog.KindLocation,
	Anchor:      "github-gh-common-mono-build",
	Banner: &generator.Banner{
		Title:    "NR GitHub Common Mono Build Generator",
		Subtitle: "Create a build workflow that calls the build workflow of every location target",
		Links:    docLinks(),
	},
	Writing: writeMonoBuild,
	Report: &report.Spec{
		Description: "Created unified build orchestration workflow for monorepo",
		Workflows:   report.Static(workflowsDir + "/build-release.yaml"),
		NextSteps: []report.Step{
			{Generator: "gh-*-build", Description: "Run in each component directory to create individual build workflows"},
		},
	},
}

// MonoService is one service of the orchestration workflow. Needs lists the
// services that must build before it.
type MonoService struct {
	Name  string
	Needs []string
}

func writeMonoBuild(_ context.Context, r *generator.Run) error {
	targets := templates.SplitCSV(r.Answers["locationTargets"])
	if len(targets) == 0 {
		return oerrors.NewValidationError("location has no targets", r.Doc.Path(), "spec.targets",
			"run backstage-location to add the component catalog files")
	}

	services, err := monoServices(r, targets)
	if err != nil {
		return err
	}
	r.Log.Debug("aggregated services", "count", len(services))

	return r.Files.Render(templates.Join(GHCommonMonoBuild, "build-release.yaml"),
		r.Repo(workflowsDir, "build-release.yaml"), templates.Data{"services": services}, scaffold.Managed)
}

// monoServices reads every target component in order and derives build
// dependencies from spec.subcomponentOf: a parent needs its subcomponents.
func monoServices(r *generator.Run, targets []string) ([]MonoService, error) {
	names := make([]string, 0, len(targets))
	needs := map[string][]string{}
	for _, target := range targets {
		doc, err := r.OpenDocument(r.Destination(filepath.FromSlash(target)), catalog.KindComponent)
		if err != nil {
			return nil, fmt.Errorf("reading target %s: %w", target, err)
		}
		if !doc.Existed() {
			return nil, oerrors.NewNotFoundError(fmt.Sprintf("target %s does not exist", target), doc.Path(),
				"run backstage in the component directory first")
		}
		name, err := doc.GetString("serviceName")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, oerrors.NewValidationError(fmt.Sprintf("target %s has no metadata.name", target),
				doc.Path(), "metadata.name", "")
		}
		names = append(names, name)

		parents, _ := doc.GetByPath([]string{"spec", "subcomponentOf"})
		for _, parent := range componentRefs(parents) {
			needs[parent] = append(needs[parent], name)
		}
	}

	services := make([]MonoService, len(names))
	for i, name := range names {
		services[i] = MonoService{Name: name, Needs: needs[name]}
	}
	return services, nil
}

// componentRefs returns the entity names of a "component:name" reference or
// a list of them.
func componentRefs(v any) []string {
	var refs []string
	switch t := v.(type) {
	case string:
		refs = []string{t}
	case []any:
		for _, item := range t {
			refs = append(refs, fmt.Sprint(item))
		}
	}
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		if i := strings.LastIndex(ref, ":"); i >= 0 {
			ref = ref[i+1:]
		}
		if ref = strings.TrimSpace(ref); ref != "" {
			names = append(names, ref)
		}
	}
	return names
}
