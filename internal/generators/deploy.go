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

var deployNextSteps = []report.Step{
	{Description: "Configure deployment environments in repository Settings > Environments"},
}

var ghTomcatDeployOnPrem = &generator.Definition{
	Name:        GHTomcatDeployOnPrem,
	Description: "Create the deploy workflow and NR Broker intention files for on-prem Tomcat deployments",
	Kind:        catalog.KindComponent,
	Anchor:      "github-tomcat-on-prem-deploy-gh-tomcat-deploy-onprem",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.ServiceName,
		prompt.ClientID,
		prompt.PomRoot,
		prompt.PostDeployTestsPath,
		prompt.GitHubProjectSlug,
		prompt.ArtifactRepositoryType,
		prompt.ArtifactRepositoryPath,
		prompt.PlaybookPath,
		prompt.TomcatContext,
		prompt.UseAltAppDirName,
		prompt.AltAppDirName.WithWhen(prompt.Is("useAltAppDirName")),
		prompt.AddWebadeConfig,
	},
	Banner: &generator.Banner{
		Title:    "NR GitHub Tomcat On-Prem Deploy Generator",
		Subtitle: "Create deploy workflow and NR Broker intention files for on-prem Tomcat deployments",
		Links:    docLinks(),
	},
	Writing: writeTomcatDeploy,
	Report: &report.Spec{
		Description: "Created on-premises deployment workflow for Java/Tomcat applications",
		Workflows:   workflowsFor(DeployWorkflowPath),
		NextSteps: append([]report.Step{
			{Description: "Ensure gh-maven-build has been run first to create the build workflow"},
		}, deployNextSteps...),
	},
}

func writeTomcatDeploy(ctx context.Context, r *generator.Run) error {
	a := r.Answers
	data := answerData(r)
	setDefault(data, "pomRoot", "./")
	setDefault(data, "artifactRepositoryPath", "")

	if err := writeDeployWorkflow(r, GHTomcatDeployOnPrem, data); err != nil {
		return err
	}
	altAppDirName := ""
	if a.Bool("useAltAppDirName") {
		altAppDirName = a.String("altAppDirName")
	}
	return ComposeJavaPlaybook(ctx, r, JavaPlaybook{
		ProjectName:     a.String("projectName"),
		ServiceName:     a.String("serviceName"),
		PlaybookPath:    a.String("playbookPath"),
		TomcatContext:   a.String("tomcatContext"),
		AltAppDirName:   altAppDirName,
		AddWebadeConfig: a.Bool("addWebadeConfig"),
	})
}

var ghOCIDeployOnPrem = &generator.Definition{
	Name:        GHOCIDeployOnPrem,
	Description: "Create the deploy workflow and NR Broker intention files for on-prem OCI artifact deployments",
	Kind:        catalog.KindComponent,
	Anchor:      "github-oci-on-prem-deploy-gh-oci-deploy-onprem",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.ServiceName,
		prompt.ClientID,
		prompt.PostDeployTestsPath,
		prompt.GitHubProjectSlug,
		prompt.DeployType,
		prompt.PlaybookPath,
	},
	Banner: &generator.Banner{
		Title:    "NR GitHub OCI On-Prem Deploy Generator",
		Subtitle: "Create deploy workflow for on-prem OCI artifact deployments (Node.js or Tomcat)",
		Links:    docLinks(),
	},
	Writing: writeOCIDeploy,
	Report: &report.Spec{
		Description: "Created on-premises deployment workflow for OCI artifacts (Node.js or Tomcat)",
		Workflows:   workflowsFor(DeployWorkflowPath),
		NextSteps: append([]report.Step{
			{Description: "Ensure a build generator (gh-nodejs-build, gh-maven-build) has been run first"},
		}, deployNextSteps...),
	},
}

func writeOCIDeploy(ctx context.Context, r *generator.Run) error {
	a := r.Answers
	data := answerData(r)
	setDefault(data, "deployType", "nodejs")

	if err := writeDeployWorkflow(r, GHOCIDeployOnPrem, data); err != nil {
		return err
	}
	return ComposeOCIPlaybook(ctx, r, OCIPlaybook{
		ProjectName:  a.String("projectName"),
		ServiceName:  a.String("serviceName"),
		PlaybookPath: a.String("playbookPath"),
		DeployType:   catalog.Answers(data).String("deployType"),
	})
}

// writeDeployWorkflow writes the service deploy workflow of generator name
// and the shared deploy files, replacing the legacy single deploy workflow.
func writeDeployWorkflow(r *generator.Run, name string, data templates.Data) error {
	if err := removeLegacyWorkflow(r, "deploy.yaml"); err != nil {
		return err
	}
	if err := r.Files.Render(templates.Join(name, "deploy.yaml"),
		r.Repo(DeployWorkflowPath(r.Answers.String("serviceName"))), data, scaffold.Managed); err != nil {
		return err
	}
	return writeCommonDeploy(r, data)
}

var ghDocsDeploy = &generator.Definition{
	Name:        GHDocsDeploy,
	Description: "Create the GitHub Pages documentation deployment workflow",
	Kind:        catalog.KindComponent,
	// Monorepo roots hold a Location document.
	IgnoreKindMismatch: true,
	Anchor:             "github-docs-deploy-gh-docs-deploy",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.ServiceName,
	},
	Banner: &generator.Banner{
		Title:    "NR GitHub Docs Deploy Generator",
		Subtitle: "Create workflow for GitHub Docs deployment",
	},
	Writing: func(_ context.Context, r *generator.Run) error {
		return r.Files.Render(templates.Join(GHDocsDeploy, "docs-deploy.yaml"),
			r.Repo(workflowsDir, "docs-deploy.yaml"), answerData(r), scaffold.Managed)
	},
	Report: &report.Spec{
		Description: "Created GitHub Pages documentation deployment workflow",
		Workflows:   report.Static(workflowsDir + "/docs-deploy.yaml"),
		NextSteps: []report.Step{
			{Description: `Enable GitHub Pages in repository Settings > Pages and set source to "GitHub Actions"`},
			{Description: "Add static documentation content to the docs/ folder"},
		},
	},
}
