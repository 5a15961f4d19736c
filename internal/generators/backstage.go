package generators

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
	"github.com/bcgov/nr-repository-composer/internal/report"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

var backstageDocs = generator.Link{Label: "Documentation", URL: "https://backstage.io/docs/features/software-catalog/"}

var backstage = &generator.Definition{
	Name:        Backstage,
	Description: "Create or update the Backstage component catalog file",
	Kind:        catalog.KindComponent,
	Anchor:      "backstage-backstage",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.ServiceName,
		prompt.Description,
		prompt.Title,
		prompt.ComponentType,
		prompt.Lifecycle,
		prompt.License,
		prompt.Owner,
		prompt.Tags,
		prompt.GitHubProjectSlug,
	},
	Banner: &generator.Banner{
		Title:    "NR Backstage Software Catalog Generator",
		Subtitle: "Create a `catalog-info.yaml` Backstage component file",
		Links:    []generator.Link{backstageDocs},
	},
	Report: &report.Spec{
		Description: "Created Backstage component catalog file",
		NextSteps: []report.Step{
			{Generator: "gh-*-build", Description: "Set up build pipeline"},
			{Generator: GHDocsDeploy, Description: "Set up GitHub Pages documentation deployment"},
			{Generator: Migrations, Description: "Set up database migration files"},
		},
	},
}

var backstageLocation = &generator.Definition{
	Name:        BackstageLocation,
	Description: "Create or update a Backstage location catalog file for monorepos",
	Kind:        catalog.KindLocation,
	Anchor:      "backstage-backstage-location",
	Prompts: []prompt.Spec{
		prompt.LocationName,
		prompt.LocationTargets,
	},
	Banner: &generator.Banner{
		Title:    "NR Backstage Software Catalog Generator",
		Subtitle: "Create a `catalog-info.yaml` Backstage location file",
		Links:    []generator.Link{backstageDocs},
	},
	Writing: writeLocation,
	Report: &report.Spec{
		Description: "Created Backstage location catalog file for monorepo",
		NextSteps: []report.Step{
			{Generator: Backstage, Description: "Run in each component directory to create component catalog files"},
			{Generator: GHCommonMonoBuild, Description: "Set up unified build orchestration workflow (after component catalogs exist)"},
			{Generator: GHDocsDeploy, Description: "Set up GitHub Pages documentation deployment"},
		},
	},
}

func writeLocation(_ context.Context, r *generator.Run) error {
	for _, target := range templates.SplitCSV(r.Answers["locationTargets"]) {
		if _, err := os.Stat(r.Destination(filepath.FromSlash(target))); err != nil {
			r.Log.Warn("location target does not exist yet", "target", target)
		}
	}
	return r.Doc.SetByPath([]string{"spec", "type"}, "path")
}

var nrRepositoryComposer = &generator.Definition{
	Name:        NRRepositoryComposer,
	Description: "Copy the nr-repository-composer runner script to the repository",
	Anchor:      "nr-repository-composer-nr-repository-composer",
	Banner: &generator.Banner{
		Title:    "NR Repository Composer",
		Subtitle: "Copy nr-repository-composer tool to repository",
	},
	Writing: writeTool,
	Report: &report.Spec{
		Description: "Copied NR Repository Composer tool to repository root",
		Workflows:   report.Static(toolScript),
		NextSteps: []report.Step{
			{Generator: Backstage, Description: "Create Backstage component catalog file"},
			{Generator: BackstageLocation, Description: "Create Backstage location catalog for monorepos"},
			{Generator: GHMavenBuild, Description: "Set up Maven build pipeline"},
			{Generator: GHNodeJSBuild, Description: "Set up Node.js build pipeline"},
			{Description: "Run: ./" + toolScript + " <working-dir> <generator> [options]"},
		},
	},
}

const toolScript = "nr-repository-composer.sh"

func writeTool(_ context.Context, r *generator.Run) error {
	return r.Files.Copy(templates.Join(NRRepositoryComposer, toolScript), r.Repo(toolScript), scaffold.Executable)
}
