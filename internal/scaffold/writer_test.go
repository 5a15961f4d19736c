package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

func newTestWriter(t *testing.T) (*Writer, string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	return NewWriter(dir, WithOutput(&out), WithLogger(log.New(&bytes.Buffer{}))), dir, &out
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestWrite_Policies(t *testing.T) {
	tests := []struct {
		name        string
		existing    *string
		content     string
		opts        FileOptions
		wantContent string
		wantStatus  string
	}{
		{
			name:        "managed file created",
			content:     "new",
			opts:        Managed,
			wantContent: "new",
			wantStatus:  output.StatusCreated,
		},
		{
			name:        "managed stale file replaced",
			existing:    strPtr("stale"),
			content:     "fresh",
			opts:        Managed,
			wantContent: "fresh",
			wantStatus:  output.StatusUpdated,
		},
		{
			name:        "managed identical file unchanged",
			existing:    strPtr("same"),
			content:     "same",
			opts:        Managed,
			wantContent: "same",
			wantStatus:  output.StatusUnchanged,
		},
		{
			name:        "seed file created when absent",
			content:     "seed",
			opts:        Seed,
			wantContent: "seed",
			wantStatus:  output.StatusCreated,
		},
		{
			name:        "seed file with different content kept",
			existing:    strPtr("customised by user"),
			content:     "template content",
			opts:        Seed,
			wantContent: "customised by user",
			wantStatus:  output.StatusSkipped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, dir, _ := newTestWriter(t)
			path := filepath.Join(dir, "nested", "file.txt")
			if tt.existing != nil {
				writeFile(t, path, *tt.existing)
			}

			require.NoError(t, w.Write(path, []byte(tt.content), tt.opts))

			assert.Equal(t, tt.wantContent, readFile(t, path))
			assert.Equal(t, []Result{{Path: "nested/file.txt", Status: tt.wantStatus}}, w.Results())
		})
	}
}

func TestRemoveIfExists(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	path := filepath.Join(dir, ".github", "workflows", "build-release.yaml")
	writeFile(t, path, "old")

	require.NoError(t, w.RemoveIfExists(path))
	assert.NoFileExists(t, path)

	require.NoError(t, w.RemoveIfExists(path), "already absent is not an error")
	assert.Equal(t, []Result{{Path: ".github/workflows/build-release.yaml", Status: output.StatusRemoved}}, w.Results())
}

func TestWrite_Modes(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	path := filepath.Join(dir, "run.sh")

	require.NoError(t, w.Write(path, []byte("#!/bin/sh\n"), Executable))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o644))
	require.NoError(t, w.Write(path, []byte("#!/bin/sh\n"), Executable))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
	assert.Equal(t, output.StatusUpdated, w.Results()[1].Status, "mode fix counts as an update")
}

func TestRender_SeedSkipsWithoutRendering(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	path := filepath.Join(dir, "vars", "custom", "all.yaml")
	writeFile(t, path, "mine: true\n")

	// The ref does not exist: a skipped seed must not even be rendered.
	require.NoError(t, w.Render("pd-base-playbook/vars/custom/none.yaml", path, nil, Seed))
	assert.Equal(t, "mine: true\n", readFile(t, path))
}

func TestRender_OverwriteMatchesCurrentAnswers(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	path := filepath.Join(dir, ".github", "workflows", "build-intention.json")
	writeFile(t, path, `{"service": "old-name"}`)

	data := templates.Data{"projectName": "proj", "serviceName": "new-name", "license": "MIT"}
	require.NoError(t, w.Render("common/build-intention.json", path, data, Managed))

	want, err := templates.Render("common/build-intention.json", data)
	require.NoError(t, err)
	assert.Equal(t, string(want), readFile(t, path))
	assert.NotContains(t, readFile(t, path), "old-name")
}

func TestRender_MissingTemplateFails(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	path := filepath.Join(dir, "x.yaml")

	err := w.Render("common/nope.yaml", path, nil, Managed)
	require.Error(t, err)
	assert.NoFileExists(t, path)
	assert.Equal(t, output.StatusFailed, w.Results()[0].Status)
}

func TestWrite_FailureAborts(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "file, not a directory")

	err := w.Write(filepath.Join(blocker, "child.txt"), []byte("x"), Managed)
	require.Error(t, err)
	assert.Equal(t, output.StatusFailed, w.Results()[0].Status)
}

func TestCopy(t *testing.T) {
	w, dir, _ := newTestWriter(t)
	path := filepath.Join(dir, "nr-repository-composer.sh")

	require.NoError(t, w.Copy("nr-repository-composer/nr-repository-composer.sh", path, Executable))
	raw, err := templates.Read("nr-repository-composer/nr-repository-composer.sh")
	require.NoError(t, err)
	assert.Equal(t, string(raw), readFile(t, path))
}

func TestPathsAndOutput(t *testing.T) {
	w, dir, out := newTestWriter(t)
	require.NoError(t, w.Write(filepath.Join(dir, "a.txt"), []byte("a"), Managed))
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	require.NoError(t, w.Write(filepath.Join(dir, "b.txt"), []byte("b"), Seed))

	assert.Equal(t, []string{"a.txt"}, w.Paths(output.StatusCreated))
	assert.Equal(t, []string{"a.txt", "b.txt"}, w.Paths(output.StatusCreated, output.StatusSkipped))
	assert.Contains(t, out.String(), "a.txt")
	assert.Contains(t, out.String(), output.StatusSkipped)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "overwrite", Overwrite.String())
	assert.Equal(t, "skip-if-exists", SkipIfExists.String())
}

func strPtr(s string) *string { return &s }
