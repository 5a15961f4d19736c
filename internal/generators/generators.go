// Package generators declares the built-in generators.
package generators

import (
	"regexp"
	"strings"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

// Generator names.
const (
	NRRepositoryComposer = "nr-repository-composer"
	Backstage            = "backstage"
	BackstageLocation    = "backstage-location"
	GHCommonMonoBuild    = "gh-common-mono-build"
	GHDocsDeploy         = "gh-docs-deploy"
	GHMavenBuild         = "gh-maven-build"
	GHTomcatDeployOnPrem = "gh-tomcat-deploy-onprem"
	GHNodeJSBuild        = "gh-nodejs-build"
	GHOCIDeployOnPrem    = "gh-oci-deploy-onprem"
	Migrations           = "migrations"
	PDBasePlaybook       = "pd-base-playbook"
	PDJavaPlaybook       = "pd-java-playbook"
	PDNodeJSPlaybook     = "pd-nodejs-playbook"
	PDOCIPlaybook        = "pd-oci-playbook"
	PDJasperReports      = "pd-jasper-reports"
	PDMaven              = "pd-maven"
)

const workflowsDir = ".github/workflows"

// All returns the built-in generators in the order they are listed.
func All() []*generator.Definition {
	return []*generator.Definition{
		nrRepositoryComposer,
		backstage,
		backstageLocation,
		ghCommonMonoBuild,
		ghDocsDeploy,
		ghMavenBuild,
		ghTomcatDeployOnPrem,
		ghNodeJSBuild,
		ghOCIDeployOnPrem,
		migrations,
		pdBasePlaybook,
		pdJavaPlaybook,
		pdNodeJSPlaybook,
		pdOCIPlaybook,
		pdJasperReports,
		pdMaven,
	}
}

// Register adds the built-in generators to reg.
func Register(reg *generator.Registry) {
	reg.Register(All()...)
}

// NewRegistry returns a registry holding the built-in generators.
func NewRegistry() *generator.Registry {
	reg := generator.NewRegistry()
	Register(reg)
	return reg
}

var nonSecretChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// BrokerJWT returns the name of the repository secret holding the NR Broker
// token for clientID. A blank client ID uses the shared BROKER_JWT secret.
func BrokerJWT(clientID string) string {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return "BROKER_JWT"
	}
	return nonSecretChars.ReplaceAllString("broker-jwt:"+clientID, "_")
}

// BuildWorkflowFile is the build workflow file name of a service.
func BuildWorkflowFile(serviceName string) string {
	return "build-release-" + serviceName + ".yaml"
}

// DeployWorkflowFile is the deploy workflow file name of a service.
func DeployWorkflowFile(serviceName string) string {
	return "deploy-" + serviceName + ".yaml"
}

// BuildWorkflowPath is the build workflow path relative to the repository root.
func BuildWorkflowPath(serviceName string) string {
	return workflowsDir + "/" + BuildWorkflowFile(serviceName)
}

// DeployWorkflowPath is the deploy workflow path relative to the repository root.
func DeployWorkflowPath(serviceName string) string {
	return workflowsDir + "/" + DeployWorkflowFile(serviceName)
}

func workflowsFor(path func(string) string) func(catalog.Answers) []string {
	return func(a catalog.Answers) []string {
		return []string{path(a.String("serviceName"))}
	}
}

// relativePrefix is the destination relative to the repository root as a
// path prefix: "" at the root, "dir/sub/" otherwise.
func relativePrefix(r *generator.Run) string {
	rel := r.Paths.Relative()
	if rel == "." || rel == "" {
		return ""
	}
	return strings.TrimSuffix(rel, "/") + "/"
}

// answerData copies the answers into template data and adds the values
// every workflow template may use.
func answerData(r *generator.Run) templates.Data {
	data := templates.Data{}
	for k, v := range r.Answers {
		data[k] = v
	}
	data["relativePath"] = relativePrefix(r)
	data["brokerJwt"] = BrokerJWT(r.Answers.String("clientId"))
	return data
}

// setDefault sets key when data has no usable value for it.
func setDefault(data templates.Data, key string, value any) {
	if v, ok := data[key]; !ok || v == nil || v == "" {
		data[key] = value
	}
}

func docLinks(extra ...generator.Link) []generator.Link {
	return append([]generator.Link{
		{Label: "Documentation", URL: "https://github.com/bcgov/nr-polaris-collection"},
		{Label: "Documentation", URL: "https://github.com/bcgov/nr-polaris-pipelines"},
	}, extra...)
}
