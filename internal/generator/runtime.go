package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/config"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/gitutil"
	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
	"github.com/bcgov/nr-repository-composer/internal/report"
	"github.com/bcgov/nr-repository-composer/internal/scaffold"
)

// Invocation is a request to run one generator.
type Invocation struct {
	Name    string
	Args    []string
	Options Options
}

// ErrCycle indicates a generator composing itself, directly or not.
var ErrCycle = errors.New("composition cycle")

// Runtime runs generators against one destination directory.
type Runtime struct {
	Registry *Registry

	// Dir is the destination directory. Empty means the working directory.
	Dir string

	// CatalogFile is the document file name inside Dir.
	CatalogFile string

	Policy   prompt.Policy
	Prompter prompt.Prompter

	// HelpPrompts prints the prompts of the invoked generator and stops.
	HelpPrompts bool

	// Verbose logs YAML diffs of updated files.
	Verbose bool

	// ReadmeBaseURL is used for banner and report links.
	ReadmeBaseURL string

	// Out receives banners, file status lines and reports. nil means stdout.
	Out io.Writer
}

// execution is the state shared by a top-level run and everything it
// composes.
type execution struct {
	rt    *Runtime
	paths gitutil.Paths
	files *scaffold.Writer
	docs  map[string]*catalog.Document

	slug         string
	slugDetected bool
}

// Run is one generator execution. Hooks receive it.
type Run struct {
	Def     *Definition
	Args    map[string]string
	Options Options

	// Doc is the catalog document; nil for generators without a kind.
	Doc *catalog.Document

	// Answers are the resolved answers: stored values merged with fresh ones.
	Answers catalog.Answers

	Paths gitutil.Paths
	Files *scaffold.Writer
	Log   *log.Logger

	exec  *execution
	stack []string
}

func (rt *Runtime) out() io.Writer {
	if rt.Out == nil {
		return os.Stdout
	}
	return rt.Out
}

func (rt *Runtime) catalogFile() string {
	if rt.CatalogFile == "" {
		return config.DefaultCatalogFile
	}
	return rt.CatalogFile
}

// Link returns the documentation URL of a generator.
func (rt *Runtime) Link(name string) string {
	base := rt.ReadmeBaseURL
	if base == "" {
		base = config.DefaultReadmeBaseURL
	}
	if d, err := rt.Registry.Lookup(name); err == nil && d.Anchor != "" {
		return base + "#" + d.Anchor
	}
	return base
}

// Run executes inv and everything it composes. Files already written are
// not rolled back when a later step fails.
func (rt *Runtime) Run(ctx context.Context, inv Invocation) error {
	dir := rt.Dir
	if dir == "" {
		dir = "."
	}
	paths, err := gitutil.ResolvePaths(dir)
	if err != nil {
		return fmt.Errorf("resolving destination %s: %w", dir, err)
	}

	ex := &execution{
		rt:    rt,
		paths: paths,
		files: scaffold.NewWriter(paths.Destination,
			scaffold.WithOutput(rt.out()),
			scaffold.WithDiff(rt.Verbose),
		),
		docs: map[string]*catalog.Document{},
	}
	return ex.run(ctx, inv, nil)
}

func (ex *execution) run(ctx context.Context, inv Invocation, stack []string) error {
	for _, name := range stack {
		if name == inv.Name {
			chain := strings.Join(append(append([]string{}, stack...), inv.Name), " -> ")
			return fmt.Errorf("%w: %s", ErrCycle, chain)
		}
	}

	def, err := ex.rt.Registry.Lookup(inv.Name)
	if err != nil {
		return err
	}
	args, opts, err := def.bind(inv.Args, inv.Options)
	if err != nil {
		return err
	}

	r := &Run{
		Def:     def,
		Args:    args,
		Options: opts,
		Answers: catalog.Answers{},
		Paths:   ex.paths,
		Files:   ex.files,
		Log:     output.GeneratorLogger(def.Name),
		exec:    ex,
		stack:   append(append([]string{}, stack...), def.Name),
	}
	top := len(stack) == 0

	r.Log.Debug("initializing", "args", args, "options", opts)
	if err := r.initializing(ctx); err != nil {
		return err
	}

	done, err := r.prompting(ctx, top)
	if err != nil || done {
		return err
	}

	r.Log.Debug("writing")
	if def.Writing != nil {
		if err := def.Writing(ctx, r); err != nil {
			return err
		}
	}

	if err := r.persist(); err != nil {
		return err
	}

	if top && !ex.rt.Policy.Headless && def.Report != nil {
		report.Render(ex.rt.out(), *def.Report, r.Answers, ex.rt.Registry.Names(), ex.rt.Link)
	}
	return nil
}

func (r *Run) initializing(ctx context.Context) error {
	if r.Def.Kind != "" {
		doc, err := r.exec.open(r.Paths.DestinationPath(r.exec.rt.catalogFile()), r.Def)
		if err != nil {
			return err
		}
		r.Doc = doc

		migrated, err := catalog.Migrate(doc)
		if err != nil {
			return fmt.Errorf("migrating %s: %w", doc.Path(), err)
		}
		for _, name := range migrated {
			r.Log.Warn("migrated deprecated property", "property", name)
		}

		answers, err := catalog.Extract(doc, doc.Table())
		if err != nil {
			return err
		}
		r.Answers = answers
	}
	if r.Def.hasPrompt(prompt.GitHubProjectSlug.Name) {
		r.Answers[prompt.DetectedSlug] = r.exec.detectSlug()
	}

	if r.Def.Initializing != nil {
		return r.Def.Initializing(ctx, r)
	}
	return nil
}

// detectSlug reads the GitHub slug of the destination repository once per
// execution.
func (ex *execution) detectSlug() string {
	if !ex.slugDetected {
		ex.slug = gitutil.DefaultSlug(ex.paths.RepoRoot)
		ex.slugDetected = true
		output.Debug("detected GitHub slug", "repo", ex.paths.RepoRoot, "slug", ex.slug)
	}
	return ex.slug
}

// open returns the document at path, sharing it with every generator of the
// execution so composed generators see each other's changes.
func (ex *execution) open(path string, def *Definition) (*catalog.Document, error) {
	if doc, ok := ex.docs[path]; ok {
		if doc.Kind() != def.Kind && !def.IgnoreKindMismatch {
			return nil, &catalog.KindMismatchError{Path: path, Expected: def.Kind, Actual: doc.Kind()}
		}
		return doc, nil
	}
	doc, err := catalog.Open(path, def.Kind, catalog.OpenOptions{IgnoreKindMismatch: def.IgnoreKindMismatch})
	if err != nil {
		return nil, err
	}
	ex.docs[path] = doc
	return doc, nil
}

// prompting reports done when the run stops after printing prompt help.
func (r *Run) prompting(ctx context.Context, top bool) (bool, error) {
	rt := r.exec.rt
	if top && !rt.Policy.Headless && r.Def.Banner != nil {
		banner := *r.Def.Banner
		banner.Links = append([]Link{{Label: "Generator", URL: rt.Link(r.Def.Name)}}, banner.Links...)
		fmt.Fprintln(rt.out(), banner.Render())
	}
	if top && rt.HelpPrompts {
		fmt.Fprint(rt.out(), prompt.UsageText(r.Def.Prompts))
		return true, nil
	}
	if len(r.Def.Prompts) == 0 {
		return false, nil
	}

	r.Log.Debug("prompting", "pending", prompt.Pending(r.Def.Prompts, r.Answers, rt.Policy))
	answers, err := prompt.Resolve(ctx, r.Def.Prompts, r.Answers, rt.Policy, rt.Prompter)
	if err != nil {
		var headless *prompt.HeadlessPromptError
		if errors.As(err, &headless) {
			return false, &oerrors.DetailError{
				Type:     "answers required",
				Message:  fmt.Sprintf("%s needs answers for: %s", r.Def.Name, strings.Join(headless.Names, ", ")),
				Location: r.documentPath(),
				Hint:     "run without --headless, or add the answers to the catalog document",
				Cause:    err,
			}
		}
		return false, err
	}
	r.Answers = answers
	return false, nil
}

// persist writes the generator's own answers, records it in the history and
// saves the document.
func (r *Run) persist() error {
	if r.Doc == nil {
		return nil
	}
	own := catalog.Answers{}
	for _, name := range r.Def.PromptNames() {
		if v, ok := r.Answers[name]; ok {
			own[name] = v
		}
	}
	if err := catalog.Write(r.Doc, r.Doc.Table(), own); err != nil {
		return err
	}
	r.Doc.AddGenerator(r.Def.Name)
	return r.Doc.Save()
}

func (r *Run) documentPath() string {
	if r.Doc != nil {
		return r.Doc.Path()
	}
	return ""
}

// Compose runs another generator to completion before returning. The child
// receives only args and opts; its failure aborts the caller.
func (r *Run) Compose(ctx context.Context, name string, args []string, opts Options) error {
	r.Log.Debug("composing", "generator", name, "args", args)
	if err := r.exec.run(ctx, Invocation{Name: name, Args: args, Options: opts}, r.stack); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Arg returns a bound positional argument.
func (r *Run) Arg(name string) string {
	return r.Args[name]
}

// Destination joins rel onto the destination directory.
func (r *Run) Destination(rel ...string) string {
	return r.Paths.DestinationPath(rel...)
}

// Repo joins rel onto the repository root.
func (r *Run) Repo(rel ...string) string {
	return r.Paths.RepoPath(rel...)
}

// OpenDocument opens another catalog document in the execution, e.g. a
// monorepo target. It is not saved by the run.
func (r *Run) OpenDocument(path string, kind catalog.Kind) (*catalog.Document, error) {
	return r.exec.open(path, &Definition{Name: r.Def.Name, Kind: kind})
}
