package generators

import (
	"context"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
	"github.com/bcgov/nr-repository-composer/internal/report"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

const migrationsDir = "migrations"

var migrations = &generator.Definition{
	Name:        Migrations,
	Description: "Create the database schema migration files",
	Kind:        catalog.KindComponent,
	Anchor:      "db-migrations-migrations",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.SchemaName,
		prompt.SchemaMigrationTool,
		prompt.SchemaMigrationType,
		prompt.SchemaMigrationBasePath,
	},
	Banner: &generator.Banner{
		Title:    "NR Database Migrations Generator",
		Subtitle: "Create database schema migration files",
	},
	Writing: writeMigrations,
	Report: &report.Spec{
		Description: "Created database migration files",
		Workflows:   report.Static(migrationsDir + "/README.md"),
		NextSteps: []report.Step{
			{Description: "Add migration scripts to the migrations base path"},
		},
	},
}

func writeMigrations(_ context.Context, r *generator.Run) error {
	data := answerData(r)
	setDefault(data, "schemaMigrationTool", "manual")
	setDefault(data, "schemaMigrationBasePath", migrationsDir)

	if err := r.Files.Render(templates.Join(Migrations, "README.md"),
		r.Destination(migrationsDir, "README.md"), data, scaffold.Managed); err != nil {
		return err
	}
	return r.Files.Copy(templates.Join(Migrations, "util", "setenv-prod.sh"),
		r.Destination(migrationsDir, "util", "setenv-prod.sh"), scaffold.Executable)
}
