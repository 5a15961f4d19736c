package prompt

import (
	"github.com/bcgov/nr-repository-composer/internal/catalog"
)

// DetectedSlug is the answer key under which the runtime passes the GitHub
// slug of the destination repository to GitHubProjectSlug. It is never
// stored in the catalog document.
const DetectedSlug = "detectedGitHubSlug"

// Shared questions. Generators list them in the order they are asked and
// specialise them with WithWhen / WithDefault.
var (
	LocationName = Spec{
		Name: "locationName", Message: "Name:", Default: Static("components"),
		Description: "The name of the location file. This is used to group services together in the Backstage catalog.",
		Example:     "components",
	}
	LocationTargets = Spec{
		Name: "locationTargets", Message: "Targets (comma-separated list of paths):", Default: Static(""),
		Description: "A comma-separated list of paths that this location file points to.",
		Example:     "src/services/catalog-info.yaml,src/website/catalog-info.yaml,src/libraries/catalog-info.yaml",
	}
	ProjectName = Spec{
		Name: "projectName", Message: "Project:", Validate: AlphaDash,
		Description: "Lowercase kebab-case name that uniquely identifies the project",
		Example:     "my-awesome-project",
	}
	ServiceName = Spec{
		Name: "serviceName", Message: "Service:", Validate: AlphaDash,
		Description: "Lowercase kebab-case name that uniquely identifies the service. Should start with project, have an optional descriptor and end with an artifact identifier.",
		Example:     "super-project-backend-war",
	}
	Description = Spec{
		Name: "description", Message: "Description:",
		Description: "A short description of the service",
	}
	Title = Spec{
		Name: "title", Message: "Title:",
		Description: "A short human readable title for the service",
	}
	ComponentType = Spec{
		Name: "type", Message: "Type:", Type: Select,
		Choices: []string{"service", "website", "library"}, Default: Static("service"),
		Description: "The type of service (e.g. service, website, library)",
	}
	Lifecycle = Spec{
		Name: "lifecycle", Message: "Lifecycle:", Type: Select,
		Choices: []string{"experimental", "production", "deprecated"}, Default: Static("production"),
		Description: "The lifecycle of the service (e.g. experimental, production, deprecated)",
	}
	License = Spec{
		Name: "license", Message: "License (SPDX):", Default: Static("Apache-2.0"),
		Description: "The license of the service (e.g. Apache-2.0)",
	}
	Owner = Spec{
		Name: "owner", Message: "Owner:",
		Description: "The owner of the service (e.g. bcgov)",
	}
	Tags = Spec{
		Name: "tags", Message: "Tags (comma-separated, e.g., java, api, frontend):", Default: Static(""),
		Description: "Comma-separated list of tags for categorizing and searching components",
		Example:     "java, api, backend, microservice",
	}
	GitHubProjectSlug = Spec{
		Name: "gitHubProjectSlug", Message: "GitHub Slug (<organization or owner>/<repository>):",
		Default:     func(a catalog.Answers) any { return a.String(DetectedSlug) },
		Description: "The GitHub slug of the service. If not provided, will be auto-detected from the git remote URL",
		Example:     "bcgov-c/edqa-war",
	}
	ClientID = Spec{
		Name: "clientId", Message: "Client ID:", Default: Static(""),
		Description: "The client ID of the Broker account to use. Leave blank to use manually set BROKER_JWT secret.",
	}
	UnitTestsPath = Spec{
		Name: "unitTestsPath", Message: "Path to unit tests (./.github/workflows/test.yaml):", Default: Static(""),
		Description: "The path to the unit tests (e.g. .github/workflows/test.yaml)",
	}
	PostDeployTestsPath = Spec{
		Name: "postDeployTestsPath", Message: "Path to post deploy tests (./.github/workflows/postDeploy.yaml):", Default: Static(""),
		Description: "The path to the post deploy tests (e.g. .github/workflows/postDeploy.yaml)",
	}
	PublishArtifactSuffix = Spec{
		Name: "publishArtifactSuffix", Message: "Published files/folders (required: dist):", Default: Static("dist"),
		Description: "A space separated list with the first used as the overall checksum.",
		Example:     "dist node_modules package.json package-lock.json",
	}
	OCIArtifactsSpec = Spec{
		Name: "ociArtifacts", Message: `OCI static assets [{"artifact":"ghcr.io/bcgov-c/servicename:${PROJECT_TAG}","output": "./static"}]:`,
		Default: Static(""), Validate: OCIArtifacts,
		Description: "A JSON array of OCI artifact references to include in build",
		Example:     `[{"artifact": "ghcr.io/bcgov-c/servicename:${PROJECT_TAG}", "output": "./static"}]`,
	}
	NodeVersion = Spec{
		Name: "nodeVersion", Message: "Node.js version:", Type: Select,
		Choices: []string{"20", "22", "24"}, Default: Static("24"),
		Description: "The Node.js version to use for building and deploying the Node.js project. This will be used in the GitHub Actions workflow.",
		Example:     "24",
	}
	SchemaName = Spec{
		Name: "schemaName", Message: "Schema(s):",
		Description: "Comma-separated list of schema name(s) to use (e.g. my_schema)",
	}
	SchemaMigrationTool = Spec{
		Name: "schemaMigrationTool", Message: "Tool:", Type: Select,
		Choices: []string{"manual", "flyway", "liquibase"}, Default: Static("flyway"),
		Description: "The tool to use for schema migrations (e.g. manual, flyway, liquibase). If a supported tool is chosen, additional guidelines are provided",
	}
	SchemaMigrationType = Spec{
		Name: "schemaMigrationType", Message: "Type (oracle, mongodb, postgresql, etc.):", Default: Static(""),
		Description: "The type of schema migration to use (e.g. oracle, mongodb, postgresql, etc.)",
	}
	SchemaMigrationBasePath = Spec{
		Name: "schemaMigrationBasePath", Message: "Base path:", Default: Static(""),
		Description: "The base path for the schema migrations",
	}
	PlaybookPath = Spec{
		Name: "playbookPath", Message: "Playbook path:", Default: Static("playbooks"),
		Description: "The path to the playbook (e.g. ./playbooks/)",
	}
	DeployType = Spec{
		Name: "deployType", Message: "Deployment type:", Type: Select,
		Choices: []string{"nodejs", "tomcat"}, Default: Static("nodejs"),
		Description: "The type of application being deployed (nodejs or tomcat)",
	}
	PomRoot = Spec{
		Name: "pomRoot", Message: "Path to pom.xml (relative to service catalog root):", Default: Static("./"),
		Description: "The path to the pom.xml file",
		Example:     "./",
	}
	JavaPattern = Spec{
		Name: "javaPattern", Message: "Java pattern:", Type: Select,
		Choices: []string{"SpringBoot", "Tomcat", "unknown"}, Default: Static("SpringBoot"),
		Description: "The development pattern used for the service. If not unknown, this will be used to provide development and deployment workflows.",
		Example:     "SpringBoot",
	}
	JavaVersion = Spec{
		Name: "javaVersion", Message: "Java version:", Type: Select,
		Choices: []string{"8", "11", "17", "21"}, Default: Static("8"),
		Description: "The Java version to use for building and deploying the Maven project. This will be used in the GitHub Actions workflow.",
		Example:     "11",
	}
	ArtifactRepositoryType = Spec{
		Name: "artifactRepositoryType", Message: "Artifact destination repository type:", Type: Select,
		Choices: []string{"GitHubPackages", "JFrogArtifactory"}, Default: Static("GitHubPackages"),
		Description: "The artifact destination repository type",
		Example:     "GitHubPackages",
	}
	ArtifactRepositoryPath = Spec{
		Name: "artifactRepositoryPath", Message: "Artifact destination repository path:",
		Default:     defaultArtifactRepositoryPath,
		Description: "The artifact destination repository path",
	}
	ToolsBuildSecrets = Spec{
		Name: "toolsBuildSecrets", Message: "Tools secrets used with builds (comma-separated):",
		Default:     Static("ARTIFACTORY_USERNAME,ARTIFACTORY_PASSWORD"),
		Description: "Tools secrets used with builds (comma-separated)",
		Example:     "ARTIFACTORY_USERNAME,ARTIFACTORY_PASSWORD",
	}
	ToolsLocalBuildSecrets = Spec{
		Name: "toolsLocalBuildSecrets", Message: "Local tools secrets used with builds (comma-separated):",
		Default:     func(a catalog.Answers) any { return a.String("toolsBuildSecrets") },
		Description: "Local tools secrets used with builds (comma-separated)",
		Example:     "ARTIFACTORY_USERNAME,ARTIFACTORY_PASSWORD",
	}
	MavenBuildCommand = Spec{
		Name: "mavenBuildCommand", Message: "Maven build arguments:", Default: Static(""),
		Description: "Arguments to pass to mvn",
		Example:     "--batch-mode -Dmaven.test.skip=true -Pgithub clean deploy",
	}
	DeployJasperReports = Spec{
		Name: "deployJasperReports", Message: "Deploy Jasper Reports:", Type: Confirm, Default: Static(false),
		Description: "Whether to deploy Jasper Reports or not",
	}
	JasperProjectName = Spec{
		Name: "jasperProjectName", Message: "Jasper Project Name:",
		Default:     func(a catalog.Answers) any { return a.String("projectName") },
		Description: "The Jasper project name to use (e.g. jasper-project)",
	}
	JasperServiceName = Spec{
		Name: "jasperServiceName", Message: "Jasper Service Name:",
		Default:     func(a catalog.Answers) any { return a.String("projectName") + "-jasper-reports" },
		Description: "The Jasper service name to use (e.g. jasper-project-backend-war)",
	}
	JasperSourcePath = Spec{
		Name: "jasperSourcePath", Message: "Jasper source path:", Default: Static("{{ playbook_dir }}/../src"),
		Description: "The relative path to the jasper source (e.g. {{ playbook_dir }}/../src)",
	}
	JasperServerInstance = Spec{
		Name: "jasperServerInstance", Message: "Jasper Reports server instance:", Default: Static("JCRS"),
		Description: "The Jasper server instance to use (e.g. JCRS, JRS, etc.)",
	}
	JasperAdditionalDataSources = Spec{
		Name: "jasperAdditionalDataSources", Message: "Additional Jasper Reports data sources:", Default: Static(""),
		Description: "(Optional) Additional data sources for Jasper",
	}
	JasperPauseSeconds = Spec{
		Name: "jasperPauseSeconds", Message: "Pause seconds for Jasper Reports deployment:", Default: Static("30"),
		Description: "The number of seconds to pause before requesting import status",
	}
	TomcatContext = Spec{
		Name: "tomcatContext", Message: "Tomcat Context (e.g. ext#results):",
		Description: "The Tomcat context to use (e.g. ext#results).",
		Example:     "ext#results",
	}
	UseAltAppDirName = Spec{
		Name: "useAltAppDirName", Message: "Use alternative webapp directory:", Type: Confirm, Default: Static(false),
		Description: "Whether to use an alternative webapp directory name or not",
	}
	AltAppDirName = Spec{
		Name: "altAppDirName", Message: "Alternative webapp directory name:", Default: Static(""),
		Description: "The alternative webapp directory name to use (e.g. jasper-project)",
	}
	AddWebadeConfig = Spec{
		Name: "addWebadeConfig", Message: "Add Webade configuration:", Type: Confirm, Default: Static(false),
		Description: "Whether to add Webade configuration or not",
	}
)

func defaultArtifactRepositoryPath(a catalog.Answers) any {
	switch a.String("artifactRepositoryType") {
	case "JFrogArtifactory":
		return catalog.JFrogMavenRepository("cc20")
	case "GitHubPackages":
		return "https://maven.pkg.github.com/" + a.String("gitHubProjectSlug")
	default:
		return ""
	}
}

// Is returns a When predicate true when name's answer is truthy.
func Is(name string) func(catalog.Answers) bool {
	return func(a catalog.Answers) bool { return a.Bool(name) }
}

// Equals returns a When predicate true when name's answer equals value.
func Equals(name, value string) func(catalog.Answers) bool {
	return func(a catalog.Answers) bool { return a.String(name) == value }
}
