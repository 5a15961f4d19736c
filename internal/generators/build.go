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

const defaultMavenBuildCommand = "mvn --batch-mode -Dmaven.test.skip=true clean package"

var (
	usesJFrog     = prompt.Equals("artifactRepositoryType", "JFrogArtifactory")
	deploysJasper = prompt.Is("deployJasperReports")
)

var ghMavenBuild = &generator.Definition{
	Name:        GHMavenBuild,
	Description: "Create the build workflow and NR Broker intention files for Maven builds",
	Kind:        catalog.KindComponent,
	Anchor:      "github-maven-build-gh-maven-build",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.ServiceName,
		prompt.License,
		prompt.ClientID,
		prompt.PomRoot,
		prompt.UnitTestsPath,
		prompt.JavaPattern,
		prompt.JavaVersion,
		prompt.GitHubProjectSlug,
		prompt.ArtifactRepositoryType,
		prompt.ArtifactRepositoryPath,
		prompt.ToolsBuildSecrets.WithWhen(usesJFrog),
		prompt.ToolsLocalBuildSecrets.WithWhen(usesJFrog),
		prompt.MavenBuildCommand,
		prompt.DeployJasperReports,
		prompt.JasperProjectName.WithWhen(deploysJasper),
		prompt.JasperServiceName.WithWhen(deploysJasper),
		prompt.JasperSourcePath.WithWhen(deploysJasper),
		prompt.JasperServerInstance.WithWhen(deploysJasper),
		prompt.JasperAdditionalDataSources.WithWhen(deploysJasper),
		prompt.JasperPauseSeconds.WithWhen(deploysJasper),
		prompt.PlaybookPath.WithWhen(deploysJasper),
	},
	Banner: &generator.Banner{
		Title:    "NR GitHub Maven Build Generator",
		Subtitle: "Create workflow and NR Broker intention files for GitHub Maven builds",
		Links:    docLinks(),
	},
	Writing: writeMavenBuild,
	Report: &report.Spec{
		Description: "Created Maven build workflow and NR Broker intention files",
		Workflows:   workflowsFor(BuildWorkflowPath),
		NextSteps: []report.Step{
			{Generator: GHTomcatDeployOnPrem, Description: "Set up on-premises Tomcat deployment workflow"},
			{Description: "Configure repository secrets for NR Broker JWT and any other required credentials"},
		},
	},
}

func writeMavenBuild(ctx context.Context, r *generator.Run) error {
	a := r.Answers
	service := a.String("serviceName")

	data := answerData(r)
	setDefault(data, "mavenBuildCommand", defaultMavenBuildCommand)
	setDefault(data, "artifactRepositoryType", "GitHubPackages")
	setDefault(data, "artifactRepositoryPath", "")
	setDefault(data, "toolsBuildSecrets", "")

	if err := removeLegacyWorkflow(r, "build-release.yaml"); err != nil {
		return err
	}
	if err := r.Files.Render(templates.Join(GHMavenBuild, "build-release.yaml"),
		r.Repo(BuildWorkflowPath(service)), data, scaffold.Managed); err != nil {
		return err
	}
	if err := writeCommonBuild(r, data); err != nil {
		return err
	}

	if err := ComposeMaven(ctx, r, MavenSettings{
		ProjectName:            a.String("projectName"),
		ServiceName:            service,
		SettingsRoot:           a.String("pomRoot"),
		ArtifactRepositoryType: catalog.Answers(data).String("artifactRepositoryType"),
		ArtifactRepositoryPath: a.String("artifactRepositoryPath"),
	}); err != nil {
		return err
	}

	if !a.Bool("deployJasperReports") {
		return nil
	}
	return ComposeJasperReports(ctx, r, JasperReports{
		ProjectName:           a.String("projectName"),
		ServiceName:           a.String("jasperServiceName"),
		PlaybookPath:          a.String("playbookPath"),
		JasperProjectName:     a.String("jasperProjectName"),
		ServerInstance:        a.String("jasperServerInstance"),
		SourcePath:            a.String("jasperSourcePath"),
		AdditionalDataSources: a.String("jasperAdditionalDataSources"),
		PauseSeconds:          a.String("jasperPauseSeconds"),
		BrokerJWT:             BrokerJWT(a.String("clientId")),
	})
}

var ghNodeJSBuild = &generator.Definition{
	Name:        GHNodeJSBuild,
	Description: "Create the build workflow and NR Broker intention files for Node.js builds",
	Kind:        catalog.KindComponent,
	Anchor:      "github-nodejs-build-gh-nodejs-build",
	Prompts: []prompt.Spec{
		prompt.ProjectName,
		prompt.ServiceName,
		prompt.License,
		prompt.ClientID,
		prompt.NodeVersion,
		prompt.UnitTestsPath,
		prompt.PublishArtifactSuffix,
		prompt.OCIArtifactsSpec,
	},
	Banner: &generator.Banner{
		Title:    "NR GitHub NodeJS Build Generator",
		Subtitle: "Create workflow and NR Broker intention files for GitHub NodeJS builds",
		Links:    docLinks(),
	},
	Writing: writeNodeJSBuild,
	Report: &report.Spec{
		Description: "Created Node.js build workflow and NR Broker intention files",
		Workflows:   workflowsFor(BuildWorkflowPath),
		NextSteps: []report.Step{
			{Generator: GHOCIDeployOnPrem, Description: "Set up on-premises deployment workflow"},
			{Description: "Configure repository secrets for NR Broker JWT and any other required credentials"},
		},
	},
}

func writeNodeJSBuild(_ context.Context, r *generator.Run) error {
	data := answerData(r)
	setDefault(data, "nodeVersion", "24")
	setDefault(data, "publishArtifactSuffix", "")

	if err := removeLegacyWorkflow(r, "build-release.yaml"); err != nil {
		return err
	}
	if err := r.Files.Render(templates.Join(GHNodeJSBuild, "build-release.yaml"),
		r.Repo(BuildWorkflowPath(r.Answers.String("serviceName"))), data, scaffold.Managed); err != nil {
		return err
	}
	return writeCommonBuild(r, data)
}
