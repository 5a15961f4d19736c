package generators

import (
	"context"
	"path"
	"path/filepath"

	"github.com/bcgov/nr-repository-composer/internal/generator"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

const defaultPlaybookPath = "playbooks"

// Playbook generators are composed by the deploy generators. They work from
// their arguments alone and keep no answers in the catalog document.
var playbookArguments = []generator.ArgSpec{
	{Name: "projectName", Description: "Project name", Required: true},
	{Name: "serviceName", Description: "Service name", Required: true},
	{Name: "playbookPath", Description: "Playbook directory", Default: defaultPlaybookPath},
}

// Playbook identifies the playbook of a service.
type Playbook struct {
	ProjectName  string
	ServiceName  string
	PlaybookPath string
}

func (p Playbook) args() []string {
	return []string{p.ProjectName, p.ServiceName, p.PlaybookPath}
}

func playbookData(r *generator.Run) templates.Data {
	data := templates.Data{
		"projectName":  r.Arg("projectName"),
		"serviceName":  r.Arg("serviceName"),
		"playbookPath": r.Arg("playbookPath"),
	}
	for k, v := range r.Options {
		data[k] = v
	}
	return data
}

func playbookDir(r *generator.Run, elem ...string) string {
	return r.Destination(append([]string{filepath.FromSlash(r.Arg("playbookPath"))}, elem...)...)
}

// renderTree renders every template below dir into the same relative layout
// under dest.
func renderTree(r *generator.Run, dir, dest string, data templates.Data, opts scaffold.FileOptions) error {
	refs, err := templates.List(dir)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		target := filepath.Join(dest, filepath.FromSlash(templates.Rel(dir, ref)))
		if err := r.Files.Render(ref, target, data, opts); err != nil {
			return err
		}
	}
	return nil
}

var pdBasePlaybook = &generator.Definition{
	Name:        PDBasePlaybook,
	Description: "Create the custom variable files of an Ansible playbook",
	Arguments:   playbookArguments,
	Hidden:      true,
	Writing: func(_ context.Context, r *generator.Run) error {
		// Custom variables belong to the service team: written once, never replaced.
		return renderTree(r, path.Join(PDBasePlaybook, "vars", "custom"),
			playbookDir(r, "vars", "custom"), playbookData(r), scaffold.Seed)
	},
}

// ComposeBasePlaybook runs pd-base-playbook.
func ComposeBasePlaybook(ctx context.Context, r *generator.Run, p Playbook) error {
	return r.Compose(ctx, PDBasePlaybook, p.args(), nil)
}

// writeStandardPlaybook writes playbook.yaml from the playbook template and
// the standard variable files of generator name, on top of the base playbook.
func writeStandardPlaybook(ctx context.Context, r *generator.Run, name string, playbook templates.Ref) error {
	if err := ComposeBasePlaybook(ctx, r, Playbook{
		ProjectName:  r.Arg("projectName"),
		ServiceName:  r.Arg("serviceName"),
		PlaybookPath: r.Arg("playbookPath"),
	}); err != nil {
		return err
	}
	data := playbookData(r)
	if err := r.Files.Render(playbook, playbookDir(r, "playbook.yaml"), data, scaffold.Managed); err != nil {
		return err
	}
	return renderTree(r, path.Join(name, "vars", "standard"), playbookDir(r, "vars", "standard"), data, scaffold.Managed)
}

var pdJavaPlaybook = &generator.Definition{
	Name:        PDJavaPlaybook,
	Description: "Create the Ansible playbook of a Java/Tomcat service",
	Arguments:   playbookArguments,
	Options: []generator.OptionSpec{
		{Name: "tomcatContext", Type: generator.String, Description: "Tomcat context"},
		{Name: "altAppDirName", Type: generator.String, Description: "Alternative webapp directory name"},
		{Name: "addWebadeConfig", Type: generator.Bool, Description: "Add WebADE configuration"},
	},
	Hidden: true,
	Writing: func(ctx context.Context, r *generator.Run) error {
		return writeStandardPlaybook(ctx, r, PDJavaPlaybook, templates.Join(PDJavaPlaybook, "playbook.yaml"))
	},
}

// JavaPlaybook are the pd-java-playbook inputs.
type JavaPlaybook struct {
	ProjectName     string
	ServiceName     string
	PlaybookPath    string
	TomcatContext   string
	AltAppDirName   string
	AddWebadeConfig bool
}

// ComposeJavaPlaybook runs pd-java-playbook.
func ComposeJavaPlaybook(ctx context.Context, r *generator.Run, p JavaPlaybook) error {
	return r.Compose(ctx, PDJavaPlaybook,
		Playbook{ProjectName: p.ProjectName, ServiceName: p.ServiceName, PlaybookPath: p.PlaybookPath}.args(),
		generator.Options{
			"tomcatContext":   p.TomcatContext,
			"altAppDirName":   p.AltAppDirName,
			"addWebadeConfig": p.AddWebadeConfig,
		})
}

var pdNodeJSPlaybook = &generator.Definition{
	Name:        PDNodeJSPlaybook,
	Description: "Create the Ansible playbook of a Node.js service",
	Arguments:   playbookArguments,
	Hidden:      true,
	Writing: func(ctx context.Context, r *generator.Run) error {
		return writeStandardPlaybook(ctx, r, PDNodeJSPlaybook, templates.Join(PDNodeJSPlaybook, "playbook.yaml"))
	},
}

// ComposeNodeJSPlaybook runs pd-nodejs-playbook.
func ComposeNodeJSPlaybook(ctx context.Context, r *generator.Run, p Playbook) error {
	return r.Compose(ctx, PDNodeJSPlaybook, p.args(), nil)
}

var pdOCIPlaybook = &generator.Definition{
	Name:        PDOCIPlaybook,
	Description: "Create the Ansible playbook deploying an OCI artifact",
	Arguments:   playbookArguments,
	Options: []generator.OptionSpec{
		{Name: "deployType", Type: generator.String, Default: "nodejs", Description: "Deployment type (nodejs or tomcat)"},
	},
	Hidden: true,
	Writing: func(ctx context.Context, r *generator.Run) error {
		playbook := "playbook-nodejs.yaml"
		if r.Options.String("deployType") == "tomcat" {
			playbook = "playbook-tomcat.yaml"
		}
		return writeStandardPlaybook(ctx, r, PDOCIPlaybook, templates.Join(PDOCIPlaybook, playbook))
	},
}

// OCIPlaybook are the pd-oci-playbook inputs.
type OCIPlaybook struct {
	ProjectName  string
	ServiceName  string
	PlaybookPath string
	DeployType   string
}

// ComposeOCIPlaybook runs pd-oci-playbook.
func ComposeOCIPlaybook(ctx context.Context, r *generator.Run, p OCIPlaybook) error {
	return r.Compose(ctx, PDOCIPlaybook,
		Playbook{ProjectName: p.ProjectName, ServiceName: p.ServiceName, PlaybookPath: p.PlaybookPath}.args(),
		generator.Options{"deployType": p.DeployType})
}

var pdJasperReports = &generator.Definition{
	Name:        PDJasperReports,
	Description: "Create the workflow, intention and playbooks deploying Jasper Reports",
	Arguments:   playbookArguments,
	Options: []generator.OptionSpec{
		{Name: "jasperProjectName", Type: generator.String, Description: "Jasper project name"},
		{Name: "jasperServerInstance", Type: generator.String, Default: "JCRS", Description: "Jasper server instance"},
		{Name: "jasperSourcePath", Type: generator.String, Default: "{{ playbook_dir }}/../src", Description: "Jasper source path"},
		{Name: "jasperAdditionalDataSources", Type: generator.String, Description: "Additional data sources (comma-separated)"},
		{Name: "jasperPauseSeconds", Type: generator.Int, Default: 30, Description: "Pause before requesting import status"},
		{Name: "brokerJwt", Type: generator.String, Default: "BROKER_JWT", Description: "Broker JWT secret name"},
	},
	Hidden:  true,
	Writing: writeJasperReports,
}

func writeJasperReports(ctx context.Context, r *generator.Run) error {
	if err := ComposeBasePlaybook(ctx, r, Playbook{
		ProjectName:  r.Arg("projectName"),
		ServiceName:  r.Arg("serviceName"),
		PlaybookPath: r.Arg("playbookPath"),
	}); err != nil {
		return err
	}

	data := playbookData(r)
	setDefault(data, "jasperProjectName", r.Arg("projectName"))

	files := []struct {
		template string
		target   string
	}{
		{"jasper-reports-workflow.yaml", r.Repo(workflowsDir, "jasper-reports.yaml")},
		{"jasper-reports-intention.json", r.Destination(".jenkins", "jasper-reports-intention.json")},
		{"jasper-reports-playbook.yaml", playbookDir(r, "jasper-reports.yaml")},
		{"jasper-reports-datasource.yaml", playbookDir(r, "jasper-datasource.yaml")},
	}
	for _, f := range files {
		if err := r.Files.Render(templates.Join(PDJasperReports, f.template), f.target, data, scaffold.Managed); err != nil {
			return err
		}
	}
	return nil
}

// JasperReports are the pd-jasper-reports inputs. ServiceName is the Jasper
// service, not the service deploying it.
type JasperReports struct {
	ProjectName           string
	ServiceName           string
	PlaybookPath          string
	JasperProjectName     string
	ServerInstance        string
	SourcePath            string
	AdditionalDataSources string
	PauseSeconds          string
	BrokerJWT             string
}

// ComposeJasperReports runs pd-jasper-reports. Empty fields take the option
// defaults.
func ComposeJasperReports(ctx context.Context, r *generator.Run, j JasperReports) error {
	opts := generator.Options{}
	set := func(name, value string) {
		if value != "" {
			opts[name] = value
		}
	}
	set("jasperProjectName", j.JasperProjectName)
	set("jasperServerInstance", j.ServerInstance)
	set("jasperSourcePath", j.SourcePath)
	set("jasperAdditionalDataSources", j.AdditionalDataSources)
	set("jasperPauseSeconds", j.PauseSeconds)
	set("brokerJwt", j.BrokerJWT)
	return r.Compose(ctx, PDJasperReports,
		Playbook{ProjectName: j.ProjectName, ServiceName: j.ServiceName, PlaybookPath: j.PlaybookPath}.args(), opts)
}

var pdMaven = &generator.Definition{
	Name:        PDMaven,
	Description: "Create the Maven settings of a service",
	Arguments: []generator.ArgSpec{
		{Name: "projectName", Description: "Project name", Required: true},
		{Name: "serviceName", Description: "Service name", Required: true},
		{Name: "mavenSettingsRoot", Description: "Directory of settings.xml", Default: "."},
	},
	Options: []generator.OptionSpec{
		{Name: "artifactRepositoryType", Type: generator.String, Default: "GitHubPackages", Description: "Artifact repository type"},
		{Name: "artifactRepositoryPath", Type: generator.String, Description: "Artifact repository URL"},
	},
	Hidden: true,
	Writing: func(_ context.Context, r *generator.Run) error {
		data := templates.Data{
			"projectName": r.Arg("projectName"),
			"serviceName": r.Arg("serviceName"),
		}
		for k, v := range r.Options {
			data[k] = v
		}
		target := r.Destination(filepath.FromSlash(r.Arg("mavenSettingsRoot")), "settings.xml")
		return r.Files.Render(templates.Join(PDMaven, "settings.xml"), target, data, scaffold.Managed)
	},
}

// MavenSettings are the pd-maven inputs.
type MavenSettings struct {
	ProjectName            string
	ServiceName            string
	SettingsRoot           string
	ArtifactRepositoryType string
	ArtifactRepositoryPath string
}

// ComposeMaven runs pd-maven.
func ComposeMaven(ctx context.Context, r *generator.Run, m MavenSettings) error {
	opts := generator.Options{"artifactRepositoryPath": m.ArtifactRepositoryPath}
	if m.ArtifactRepositoryType != "" {
		opts["artifactRepositoryType"] = m.ArtifactRepositoryType
	}
	return r.Compose(ctx, PDMaven, []string{m.ProjectName, m.ServiceName, m.SettingsRoot}, opts)
}
