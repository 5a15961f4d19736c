package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

func playbook(key string) []string   { return AnnotationPath(PlaybookNamespace + "/" + key) }
func migrations(key string) []string { return AnnotationPath(MigrationsNamespace + "/" + key) }

// JFrogMavenRepository returns the Artifactory Maven repository of a project.
func JFrogMavenRepository(project string) string {
	return "https://artifacts.developer.gov.bc.ca/artifactory/" + project + "-gen-maven-local"
}

// Properties is the property table shared by every generator.
var Properties = NewTable(
	// Backstage fields
	PropertyMapping{Path: []string{"spec", "system"}, Property: "projectName"},
	PropertyMapping{Path: []string{"metadata", "name"}, Property: "serviceName"},
	PropertyMapping{Path: []string{"metadata", "description"}, Property: "description"},
	PropertyMapping{Path: []string{"metadata", "title"}, Property: "title"},
	PropertyMapping{Path: []string{"metadata", "tags"}, Property: "tags", CSV: true, WriteEmpty: true},
	PropertyMapping{Path: []string{"spec", "type"}, Property: "type"},
	PropertyMapping{Path: []string{"spec", "lifecycle"}, Property: "lifecycle"},
	PropertyMapping{Path: []string{"spec", "owner"}, Property: "owner"},
	PropertyMapping{Path: AnnotationPath("license"), Property: "license"},
	PropertyMapping{Path: AnnotationPath("github.com/project-slug"), Property: "gitHubProjectSlug"},

	// Location fields. metadata.name is shared with serviceName.
	PropertyMapping{Path: []string{"metadata", "name"}, Property: "locationName"},
	PropertyMapping{Path: []string{"spec", "targets"}, Property: "locationTargets", CSV: true, WriteEmpty: true},

	// Build and deploy
	PropertyMapping{Path: playbook("clientId"), Property: "clientId", WriteEmpty: true},
	PropertyMapping{Path: playbook("unitTestsPath"), Property: "unitTestsPath", WriteEmpty: true},
	PropertyMapping{Path: playbook("postDeployTestsPath"), Property: "postDeployTestsPath", WriteEmpty: true},
	PropertyMapping{Path: playbook("publishArtifactSuffix"), Property: "publishArtifactSuffix"},
	PropertyMapping{Path: playbook("ociArtifacts"), Property: "ociArtifacts", WriteEmpty: true},
	PropertyMapping{Path: playbook("nodeVersion"), Property: "nodeVersion"},
	PropertyMapping{Path: playbook("pomRoot"), Property: "pomRoot"},
	PropertyMapping{Path: playbook("javaVersion"), Property: "javaVersion"},
	PropertyMapping{Path: playbook("javaPattern"), Property: "javaPattern"},
	PropertyMapping{Path: playbook("artifactRepositoryType"), Property: "artifactRepositoryType"},
	PropertyMapping{Path: playbook("artifactRepositoryPath"), Property: "artifactRepositoryPath"},
	PropertyMapping{Path: playbook("mavenBuildCommand"), Property: "mavenBuildCommand", WriteEmpty: true},
	PropertyMapping{Path: playbook("toolsBuildSecrets"), Property: "toolsBuildSecrets", CSV: true, WriteEmpty: true},
	PropertyMapping{Path: playbook("toolsLocalBuildSecrets"), Property: "toolsLocalBuildSecrets", CSV: true, WriteEmpty: true},
	PropertyMapping{Path: playbook("playbookPath"), Property: "playbookPath"},
	PropertyMapping{Path: playbook("deployType"), Property: "deployType"},
	PropertyMapping{Path: playbook("tomcatContext"), Property: "tomcatContext"},
	PropertyMapping{Path: playbook("useAltAppDirName"), Property: "useAltAppDirName"},
	PropertyMapping{Path: playbook("altAppDirName"), Property: "altAppDirName", WriteEmpty: true},
	PropertyMapping{Path: playbook("addWebadeConfig"), Property: "addWebadeConfig"},

	// Jasper Reports
	PropertyMapping{Path: playbook("deployJasperReports"), Property: "deployJasperReports"},
	PropertyMapping{Path: playbook("jasperProjectName"), Property: "jasperProjectName"},
	PropertyMapping{Path: playbook("jasperServiceName"), Property: "jasperServiceName"},
	PropertyMapping{Path: playbook("jasperSourcePath"), Property: "jasperSourcePath"},
	PropertyMapping{Path: playbook("jasperServerInstance"), Property: "jasperServerInstance"},
	PropertyMapping{Path: playbook("jasperAdditionalDataSources"), Property: "jasperAdditionalDataSources", WriteEmpty: true},
	PropertyMapping{Path: playbook("jasperPauseSeconds"), Property: "jasperPauseSeconds", Transform: toInt, Inverse: toString},

	// Database migrations
	PropertyMapping{Path: migrations("schemaName"), Property: "schemaName", CSV: true},
	PropertyMapping{Path: migrations("schemaMigrationTool"), Property: "schemaMigrationTool"},
	PropertyMapping{Path: migrations("schemaMigrationType"), Property: "schemaMigrationType", WriteEmpty: true},
	PropertyMapping{Path: migrations("schemaMigrationBasePath"), Property: "schemaMigrationBasePath", WriteEmpty: true},

	// Deprecated
	PropertyMapping{Path: playbook("deployOnPrem"), Property: "deployOnPrem", Deprecated: migrateDeployOnPrem},
	PropertyMapping{Path: playbook("gitHubPackages"), Property: "gitHubPackages", Deprecated: migrateGitHubPackages},
	PropertyMapping{Path: playbook("artifactoryProject"), Property: "artifactoryProject", Deprecated: migrateArtifactoryProject},
	PropertyMapping{Path: playbook("artifactoryPackageType"), Property: "artifactoryPackageType", Deprecated: dropValue},
	PropertyMapping{Path: playbook("gitHubOwnerPack"), Property: "gitHubOwnerPack", Deprecated: dropValue},
)

// toInt converts numeric strings; anything else is stored unchanged.
func toInt(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return v
	}
	return i
}

// toString formats a stored scalar the way a prompt answers it.
func toString(v any) any {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, _ := strconv.ParseBool(strings.TrimSpace(t))
		return b
	}
	return false
}

// migrateDeployOnPrem replaces the build generators' on-prem flag with the
// dedicated deploy generator in the history.
func migrateDeployOnPrem(doc *Document, value any) error {
	if !truthy(value) {
		return nil
	}
	if doc.HasGenerator("gh-nodejs-build") {
		doc.AddGenerator("gh-oci-deploy-onprem")
	} else {
		doc.AddGenerator("gh-tomcat-deploy-onprem")
	}
	return nil
}

func migrateGitHubPackages(doc *Document, value any) error {
	current, err := doc.GetString("artifactRepositoryType")
	if err != nil || current != "" {
		return err
	}
	repoType := "JFrogArtifactory"
	if truthy(value) {
		repoType = "GitHubPackages"
	}
	return doc.SetByProperty("artifactRepositoryType", repoType)
}

func migrateArtifactoryProject(doc *Document, value any) error {
	project, ok := value.(string)
	if !ok || strings.TrimSpace(project) == "" {
		return nil
	}
	current, err := doc.GetString("artifactRepositoryPath")
	if err != nil || current != "" {
		return err
	}
	return doc.SetByProperty("artifactRepositoryPath", JFrogMavenRepository(strings.TrimSpace(project)))
}

// dropValue discards a property with no replacement.
func dropValue(*Document, any) error { return nil }
