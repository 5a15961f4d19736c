package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/generators"
	"github.com/bcgov/nr-repository-composer/internal/testutil"
)

const componentCatalog = `apiVersion: backstage.io/v1alpha1
kind: Component
metadata:
  name: edqa-web
spec:
  type: service
  lifecycle: production
  owner: edqa
  system: edqa
`

// execute runs nrc against dir with an isolated config file.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	g := &globals{registry: generators.NewRegistry()}
	root := newRootCmd(g)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args,
		"--dir", dir,
		"--config", filepath.Join(dir, "nrc-config.yaml"),
		"--timestamps=false",
	))

	err := root.Execute()
	return stdout.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	return exitErr.Code
}

func TestRootCmd_RegistersGenerators(t *testing.T) {
	root := NewRootCmd()
	reg := generators.NewRegistry()

	for _, def := range reg.Definitions() {
		t.Run(def.Name, func(t *testing.T) {
			c, _, err := root.Find([]string{def.Name})
			require.NoError(t, err)
			assert.Equal(t, def.Name, c.Name())
			assert.Equal(t, def.Hidden, c.Hidden)
			for _, opt := range def.Options {
				assert.NotNil(t, c.Flags().Lookup(opt.Name), "flag --%s", opt.Name)
			}
		})
	}
}

func TestGeneratorCmd_WritesFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "pd-maven", "edqa", "edqa-web", "--headless",
		"--artifactRepositoryType", "JFrog", "--artifactRepositoryPath", "edqa-release-local")
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, dir, "settings.xml"), "edqa-release-local")
}

func TestGeneratorCmd_HeadlessWithStoredAnswers(t *testing.T) {
	dir := testutil.CopyFixture(t, "maven-component")

	out, err := execute(t, dir, generators.GHMavenBuild, "--headless")
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, dir, ".github/workflows/build-release-edqa-war.yaml"), "SERVICE: edqa-war")
	assert.Contains(t, testutil.ReadFile(t, dir, "catalog-info.yaml"), generators.GHMavenBuild)
	assert.NotContains(t, out, "Suggested Next Steps", "headless runs print no report")
}

func TestGeneratorCmd_MonoBuild(t *testing.T) {
	dir := testutil.CopyFixture(t, "monorepo")

	_, err := execute(t, dir, generators.GHCommonMonoBuild, "--headless")
	require.NoError(t, err)

	workflow := testutil.ReadFile(t, dir, ".github/workflows/build-release.yaml")
	assert.Contains(t, workflow, "needs: [edqa-web, edqa-lib]")
}

func TestGeneratorCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{
			name:     "missing required argument",
			args:     []string{"pd-maven", "--headless"},
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "too many arguments",
			args:     []string{"pd-maven", "a", "b", "c", "d", "--headless"},
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "flag of the wrong type",
			args:     []string{"pd-jasper-reports", "edqa", "edqa-web", "--jasperPauseSeconds", "soon"},
			wantCode: oerrors.ExitValidationError,
		},
		{
			name:     "headless run with unanswered prompts",
			args:     []string{"backstage", "--headless"},
			wantCode: oerrors.ExitHeadlessPrompt,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := execute(t, dir, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, exitCode(t, err))
		})
	}
}

func TestGeneratorCmd_HeadlessWritesNothing(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "backstage", "--headless")
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "catalog-info.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGeneratorCmd_KindMismatch(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "catalog-info.yaml", componentCatalog)

	_, err := execute(t, dir, "backstage-location", "--headless")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitKindMismatch, exitCode(t, err))
}

func TestGeneratorCmd_HelpPrompts(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "backstage", "--help-prompts")
	require.NoError(t, err)
	assert.Contains(t, out, "(key: projectName)")

	_, statErr := os.Stat(filepath.Join(dir, "catalog-info.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestListCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "gh-maven-build")
	assert.Contains(t, out, "Component")
	assert.NotContains(t, out, "pd-maven")

	out, err = execute(t, dir, "list", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "pd-maven")

	out, err = execute(t, dir, "list", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "backstage"`)
	assert.Contains(t, out, `"projectName"`)

	_, err = execute(t, dir, "list", "-o", "xml")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
}

func TestCatalogShow(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "catalog-info.yaml", componentCatalog)

	t.Run("yaml", func(t *testing.T) {
		out, err := execute(t, dir, "catalog", "show")
		require.NoError(t, err)
		assert.Contains(t, out, "kind: Component")
		assert.Contains(t, out, "name: edqa-web")
	})

	t.Run("json", func(t *testing.T) {
		out, err := execute(t, dir, "catalog", "show", "-o", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"kind": "Component"`)
	})

	t.Run("answers", func(t *testing.T) {
		out, err := execute(t, dir, "catalog", "show", "--answers")
		require.NoError(t, err)
		assert.Contains(t, out, "projectName: edqa")
		assert.Contains(t, out, "serviceName: edqa-web")
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := execute(t, dir, "catalog", "show", "-o", "table")
		require.Error(t, err)
		assert.Equal(t, oerrors.ExitValidationError, exitCode(t, err))
	})
}

func TestCatalogShow_Missing(t *testing.T) {
	_, err := execute(t, t.TempDir(), "catalog", "show")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}

func TestDocsNextSteps(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, dir, "docs", "next-steps", generators.GHMavenBuild)
	require.NoError(t, err)
	assert.Contains(t, out, "**Suggested Next Steps:**")
	assert.Contains(t, out, generators.GHTomcatDeployOnPrem)

	_, err = execute(t, dir, "docs", "next-steps", "gh-nothing")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, exitCode(t, err))
}

func TestVersionCmd(t *testing.T) {
	c := NewVersionCmd()
	assert.Equal(t, "version", c.Use)
	assert.NotEmpty(t, c.Short)

	c.SetOut(&bytes.Buffer{})
	assert.NoError(t, c.Execute())
}
