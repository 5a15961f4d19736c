package generator

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
	"github.com/bcgov/nr-repository-composer/internal/report"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
)

// recorder answers from a map and remembers what was asked.
type recorder struct {
	answers  map[string]any
	asked    []string
	defaults map[string]any
}

func (r *recorder) Ask(_ context.Context, q prompt.Question) (any, error) {
	r.asked = append(r.asked, q.Spec.Name)
	if r.defaults == nil {
		r.defaults = map[string]any{}
	}
	r.defaults[q.Spec.Name] = q.Default
	if v, ok := r.answers[q.Spec.Name]; ok {
		return v, nil
	}
	return q.Default, nil
}

type harness struct {
	rt     *Runtime
	dir    string
	out    *bytes.Buffer
	asker  *recorder
	events []string
}

func newHarness(t *testing.T, defs ...*Definition) *harness {
	t.Helper()
	h := &harness{dir: t.TempDir(), out: &bytes.Buffer{}, asker: &recorder{answers: map[string]any{}}}
	reg := NewRegistry()
	reg.Register(defs...)
	h.rt = &Runtime{Registry: reg, Dir: h.dir, Prompter: h.asker, Out: h.out}
	return h
}

func (h *harness) record(event string) Hook {
	return func(context.Context, *Run) error {
		h.events = append(h.events, event)
		return nil
	}
}

func (h *harness) catalogPath() string {
	return filepath.Join(h.dir, "catalog-info.yaml")
}

func (h *harness) writeCatalog(t *testing.T, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(h.catalogPath(), []byte(content), 0o644))
}

func (h *harness) open(t *testing.T, kind catalog.Kind) *catalog.Document {
	t.Helper()
	doc, err := catalog.Open(h.catalogPath(), kind, catalog.OpenOptions{IgnoreKindMismatch: true})
	require.NoError(t, err)
	return doc
}

func TestRun_ComposedChildCompletesBeforeParentContinues(t *testing.T) {
	var h *harness
	parent := &Definition{
		Name: "parent",
		Kind: catalog.KindComponent,
		Writing: func(ctx context.Context, r *Run) error {
			h.events = append(h.events, "parent:writing")
			if err := r.Compose(ctx, "child", []string{"proj"}, Options{"flag": true}); err != nil {
				return err
			}
			h.events = append(h.events, "parent:after-compose")
			return nil
		},
	}
	child := &Definition{
		Name:      "child",
		Arguments: []ArgSpec{{Name: "projectName", Required: true}},
		Options:   []OptionSpec{{Name: "flag", Type: Bool}},
	}
	h = newHarness(t, parent, child)
	child.Initializing = h.record("child:initializing")
	child.Writing = func(_ context.Context, r *Run) error {
		h.events = append(h.events, "child:writing")
		assert.Equal(t, "proj", r.Arg("projectName"))
		assert.True(t, r.Options.Bool("flag"))
		assert.Empty(t, r.Answers, "children do not inherit answers")
		return nil
	}

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "parent"}))
	assert.Equal(t, []string{"parent:writing", "child:initializing", "child:writing", "parent:after-compose"}, h.events)
	assert.Equal(t, []string{"parent"}, h.open(t, catalog.KindComponent).Generators())
}

func TestRun_ChildFailureAbortsParent(t *testing.T) {
	boom := errors.New("boom")
	var h *harness
	parent := &Definition{
		Name:    "parent",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{{Name: "serviceName", Message: "Service:"}},
		Writing: func(ctx context.Context, r *Run) error {
			if err := r.Files.Write(r.Destination("first.txt"), []byte("x"), scaffold.Managed); err != nil {
				return err
			}
			if err := r.Compose(ctx, "child", nil, nil); err != nil {
				return err
			}
			h.events = append(h.events, "parent:after-compose")
			return nil
		},
	}
	child := &Definition{Name: "child", Writing: func(context.Context, *Run) error { return boom }}
	h = newHarness(t, parent, child)
	h.asker.answers["serviceName"] = "svc"

	err := h.rt.Run(context.Background(), Invocation{Name: "parent"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "child")
	assert.Empty(t, h.events, "parent writing stops at the failed composition")
	assert.FileExists(t, filepath.Join(h.dir, "first.txt"), "earlier writes are not rolled back")
	assert.NoFileExists(t, h.catalogPath(), "the document is not saved")
}

func TestRun_RejectsCycles(t *testing.T) {
	composes := func(next string) Hook {
		return func(ctx context.Context, r *Run) error { return r.Compose(ctx, next, nil, nil) }
	}
	h := newHarness(t,
		&Definition{Name: "a", Writing: composes("b")},
		&Definition{Name: "b", Writing: composes("a")},
		&Definition{Name: "self", Writing: composes("self")},
	)

	err := h.rt.Run(context.Background(), Invocation{Name: "a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCycle))
	assert.Contains(t, err.Error(), "a -> b -> a")

	err = h.rt.Run(context.Background(), Invocation{Name: "self"})
	assert.True(t, errors.Is(err, ErrCycle))
}

func TestRun_UnknownComposedGenerator(t *testing.T) {
	h := newHarness(t, &Definition{Name: "a", Writing: func(ctx context.Context, r *Run) error {
		return r.Compose(ctx, "missing", nil, nil)
	}})
	err := h.rt.Run(context.Background(), Invocation{Name: "a"})
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestRun_HistoryIsNotDuplicated(t *testing.T) {
	def := &Definition{Name: "gh-docs-deploy", Kind: catalog.KindComponent}
	other := &Definition{Name: "backstage", Kind: catalog.KindComponent}
	h := newHarness(t, def, other)

	for _, name := range []string{"gh-docs-deploy", "backstage", "gh-docs-deploy"} {
		require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: name}))
	}
	assert.Equal(t, []string{"gh-docs-deploy", "backstage"}, h.open(t, catalog.KindComponent).Generators())
}

func TestRun_KindMismatchFailsBeforePrompting(t *testing.T) {
	h := newHarness(t, &Definition{
		Name:    "gh-maven-build",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.ServiceName},
	})
	h.writeCatalog(t, "apiVersion: backstage.io/v1alpha1\nkind: Location\nmetadata:\n  name: mono\n")

	err := h.rt.Run(context.Background(), Invocation{Name: "gh-maven-build"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrKindMismatch))
	assert.Empty(t, h.asker.asked)
}

func TestRun_IgnoreKindMismatch(t *testing.T) {
	h := newHarness(t, &Definition{Name: "tool", Kind: catalog.KindComponent, IgnoreKindMismatch: true})
	h.writeCatalog(t, "apiVersion: backstage.io/v1alpha1\nkind: Location\n")

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "tool"}))
	assert.Equal(t, catalog.KindLocation, h.open(t, catalog.KindLocation).Kind())
}

func TestRun_HeadlessFailsWithoutWriting(t *testing.T) {
	var wrote bool
	h := newHarness(t, &Definition{
		Name:    "gh-docs-deploy",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.ProjectName, prompt.ServiceName},
		Writing: func(context.Context, *Run) error { wrote = true; return nil },
	})
	h.rt.Policy = prompt.Policy{Headless: true}
	h.writeCatalog(t, "kind: Component\nmetadata:\n  name: svc\n")

	err := h.rt.Run(context.Background(), Invocation{Name: "gh-docs-deploy"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrHeadless))
	assert.Equal(t, oerrors.ExitHeadlessPrompt, oerrors.ExitCodeFromError(err))

	var headless *prompt.HeadlessPromptError
	require.True(t, errors.As(err, &headless))
	assert.Equal(t, []string{"projectName"}, headless.Names)
	assert.False(t, wrote)
	assert.Empty(t, h.asker.asked)
	assert.NotContains(t, h.out.String(), "Generator:", "no banner in headless runs")
}

func TestRun_HeadlessWithStoredAnswers(t *testing.T) {
	var got catalog.Answers
	h := newHarness(t, &Definition{
		Name:    "gh-docs-deploy",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.ProjectName, prompt.ServiceName},
		Writing: func(_ context.Context, r *Run) error { got = r.Answers; return nil },
		Report:  &report.Spec{Description: "done"},
	})
	h.rt.Policy = prompt.Policy{Headless: true}
	h.writeCatalog(t, "kind: Component\nmetadata:\n  name: svc\nspec:\n  system: proj\n")

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "gh-docs-deploy"}))
	assert.Equal(t, "proj", got.String("projectName"))
	assert.Equal(t, "svc", got.String("serviceName"))
	assert.NotContains(t, h.out.String(), "Generator Complete", "no report in headless runs")
}

func TestRun_PersistsOnlyOwnPrompts(t *testing.T) {
	h := newHarness(t, &Definition{
		Name:    "backstage",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.ServiceName},
	})
	h.rt.Policy = prompt.Policy{ReAskAnswered: true}
	h.asker.answers["serviceName"] = "renamed"
	h.writeCatalog(t, "kind: Component\nmetadata:\n  name: original\n")

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "backstage"}))

	v, ok := h.open(t, catalog.KindComponent).GetByPath([]string{"metadata", "name"})
	require.True(t, ok)
	assert.Equal(t, "renamed", v, "locationName shares the path and must not clobber it")
}

func TestRun_SkipsAnsweredAndStoresFresh(t *testing.T) {
	h := newHarness(t, &Definition{
		Name:    "backstage",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.ProjectName, prompt.ServiceName},
	})
	h.asker.answers["serviceName"] = "svc"
	h.writeCatalog(t, "# keep me\nkind: Component\nspec:\n  system: proj\n")

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "backstage"}))
	assert.Equal(t, []string{"serviceName"}, h.asker.asked)

	data, err := os.ReadFile(h.catalogPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "# keep me")
	assert.Contains(t, string(data), "name: svc")
}

func TestRun_MigratesDeprecatedProperties(t *testing.T) {
	h := newHarness(t, &Definition{Name: "gh-maven-build", Kind: catalog.KindComponent})
	h.writeCatalog(t, `kind: Component
metadata:
  annotations:
    playbook.io.nrs.gov.bc.ca/gitHubPackages: "true"
`)

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "gh-maven-build"}))

	doc := h.open(t, catalog.KindComponent)
	v, err := doc.GetByProperty("artifactRepositoryType")
	require.NoError(t, err)
	assert.Equal(t, "GitHubPackages", v)
	_, present := doc.GetByPath(catalog.AnnotationPath(catalog.PlaybookNamespace + "/gitHubPackages"))
	assert.False(t, present)
}

func TestRun_HelpPromptsStops(t *testing.T) {
	var wrote bool
	h := newHarness(t, &Definition{
		Name:    "backstage",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.ProjectName},
		Writing: func(context.Context, *Run) error { wrote = true; return nil },
	})
	h.rt.HelpPrompts = true

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "backstage"}))
	assert.Contains(t, h.out.String(), "key: projectName")
	assert.False(t, wrote)
	assert.Empty(t, h.asker.asked)
	assert.NoFileExists(t, h.catalogPath())
}

func TestRun_BannerAndReport(t *testing.T) {
	h := newHarness(t,
		&Definition{
			Name:   "gh-docs-deploy",
			Kind:   catalog.KindComponent,
			Anchor: "github-docs-deploy-gh-docs-deploy",
			Banner: &Banner{Title: "NR GitHub Docs Deploy Generator", Subtitle: "Create docs workflow"},
			Report: &report.Spec{
				Description: "Created docs workflow",
				Workflows:   report.Static(".github/workflows/docs-deploy.yaml"),
			},
			Writing: func(ctx context.Context, r *Run) error { return r.Compose(ctx, "child", nil, nil) },
		},
		&Definition{
			Name:   "child",
			Banner: &Banner{Title: "Child banner"},
			Report: &report.Spec{Description: "Child report"},
		},
	)

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "gh-docs-deploy"}))
	out := h.out.String()
	assert.Contains(t, out, "NR GitHub Docs Deploy Generator")
	assert.Contains(t, out, "README.md#github-docs-deploy-gh-docs-deploy")
	assert.Contains(t, out, "Created docs workflow")
	assert.Contains(t, out, "docs-deploy.yaml")
	assert.NotContains(t, out, "Child banner", "composed generators run quietly")
	assert.NotContains(t, out, "Child report")
}

func TestRun_ComposedGeneratorsShareTheDocument(t *testing.T) {
	h := newHarness(t,
		&Definition{
			Name:    "parent",
			Kind:    catalog.KindComponent,
			Writing: func(ctx context.Context, r *Run) error { return r.Compose(ctx, "child", nil, nil) },
		},
		&Definition{Name: "child", Kind: catalog.KindComponent},
		&Definition{Name: "location-child", Kind: catalog.KindLocation},
		&Definition{
			Name:    "mismatched-parent",
			Kind:    catalog.KindComponent,
			Writing: func(ctx context.Context, r *Run) error { return r.Compose(ctx, "location-child", nil, nil) },
		},
	)

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "parent"}))
	assert.Equal(t, []string{"child", "parent"}, h.open(t, catalog.KindComponent).Generators())

	err := h.rt.Run(context.Background(), Invocation{Name: "mismatched-parent"})
	assert.True(t, errors.Is(err, oerrors.ErrKindMismatch))
}

func TestRun_InvalidArguments(t *testing.T) {
	h := newHarness(t, playbookDef())
	err := h.rt.Run(context.Background(), Invocation{Name: "pd-java-playbook"})
	assert.True(t, errors.Is(err, oerrors.ErrValidation))
}

func initRepo(t *testing.T, dir, origin string) {
	t.Helper()
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = r.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{origin}})
	require.NoError(t, err)
}

func TestRun_SlugDefaultComesFromDestination(t *testing.T) {
	cwd := t.TempDir()
	initRepo(t, cwd, "git@github.com:cwd-owner/cwd-repo.git")
	t.Chdir(cwd)

	var got catalog.Answers
	h := newHarness(t, &Definition{
		Name:    "backstage",
		Kind:    catalog.KindComponent,
		Prompts: []prompt.Spec{prompt.GitHubProjectSlug},
		Writing: func(_ context.Context, r *Run) error { got = r.Answers; return nil },
	})
	initRepo(t, h.dir, "https://github.com/dest-owner/dest-repo.git")

	require.NoError(t, h.rt.Run(context.Background(), Invocation{Name: "backstage"}))

	assert.Equal(t, "dest-owner/dest-repo", h.asker.defaults["gitHubProjectSlug"])
	assert.Equal(t, "dest-owner/dest-repo", got.String("gitHubProjectSlug"))

	content, err := os.ReadFile(h.catalogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "github.com/project-slug: dest-owner/dest-repo")
	assert.NotContains(t, string(content), prompt.DetectedSlug)
}
