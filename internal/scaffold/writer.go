// Package scaffold materializes rendered templates into a repository and
// records what happened to every file.
package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/templates"
)

// Policy decides what happens when the destination already exists.
type Policy int

const (
	// Overwrite regenerates managed files on every run.
	Overwrite Policy = iota

	// SkipIfExists writes seed files once and never touches them again.
	SkipIfExists
)

func (p Policy) String() string {
	if p == SkipIfExists {
		return "skip-if-exists"
	}
	return "overwrite"
}

// Default file modes.
const (
	ModeFile       fs.FileMode = 0o644
	ModeExecutable fs.FileMode = 0o755
	modeDir        fs.FileMode = 0o755
)

// FileOptions control how one file is written.
type FileOptions struct {
	Policy Policy

	// Mode is the permission of the written file. Zero means ModeFile.
	Mode fs.FileMode
}

// Managed is the options of a generator-owned file.
var Managed = FileOptions{Policy: Overwrite}

// Seed is the options of a user-owned file that is written once.
var Seed = FileOptions{Policy: SkipIfExists}

// Executable is the options of a generator-owned script.
var Executable = FileOptions{Policy: Overwrite, Mode: ModeExecutable}

func (o FileOptions) mode() fs.FileMode {
	if o.Mode == 0 {
		return ModeFile
	}
	return o.Mode
}

// Result is the outcome for one file.
type Result struct {
	// Path is relative to the writer base when possible.
	Path   string
	Status string
}

// Writer writes files and records a Result for each.
type Writer struct {
	base    string
	out     io.Writer
	log     *log.Logger
	diff    bool
	results []Result
}

// Option configures a Writer.
type Option func(*Writer)

// WithOutput sets where file status lines are printed. nil disables them.
func WithOutput(w io.Writer) Option {
	return func(wr *Writer) { wr.out = w }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(wr *Writer) { wr.log = l }
}

// WithDiff logs a YAML-aware diff whenever a managed YAML file changes.
func WithDiff(enabled bool) Option {
	return func(wr *Writer) { wr.diff = enabled }
}

// NewWriter returns a writer reporting paths relative to base.
func NewWriter(base string, opts ...Option) *Writer {
	w := &Writer{base: base, out: os.Stdout, log: log.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Results returns every recorded result in write order.
func (w *Writer) Results() []Result {
	out := make([]Result, len(w.results))
	copy(out, w.results)
	return out
}

// Paths returns the paths of results with one of the given statuses.
func (w *Writer) Paths(statuses ...string) []string {
	want := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}
	var paths []string
	for _, r := range w.results {
		if want[r.Status] {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// Write stores content at path following opts.
func (w *Writer) Write(path string, content []byte, opts FileOptions) error {
	existing, err := os.ReadFile(path)
	exists := err == nil
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return w.fail(path, fmt.Errorf("reading %s: %w", path, err))
	}

	if exists && opts.Policy == SkipIfExists {
		w.record(path, output.StatusSkipped)
		return nil
	}

	if exists && bytes.Equal(existing, content) {
		changed, err := ensureMode(path, opts.mode())
		if err != nil {
			return w.fail(path, err)
		}
		if changed {
			w.record(path, output.StatusUpdated)
		} else {
			w.record(path, output.StatusUnchanged)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), modeDir); err != nil {
		return w.fail(path, fmt.Errorf("creating directory for %s: %w", path, err))
	}
	if err := os.WriteFile(path, content, opts.mode()); err != nil {
		return w.fail(path, fmt.Errorf("writing %s: %w", path, err))
	}
	if _, err := ensureMode(path, opts.mode()); err != nil {
		return w.fail(path, err)
	}

	if !exists {
		w.record(path, output.StatusCreated)
		return nil
	}
	if w.diff && isYAML(path) {
		w.logDiff(path, existing, content)
	}
	w.record(path, output.StatusUpdated)
	return nil
}

// Render renders ref with data and writes it to path.
func (w *Writer) Render(ref templates.Ref, path string, data templates.Data, opts FileOptions) error {
	if opts.Policy == SkipIfExists && exists(path) {
		w.record(path, output.StatusSkipped)
		return nil
	}
	content, err := templates.Render(ref, data)
	if err != nil {
		return w.fail(path, err)
	}
	return w.Write(path, content, opts)
}

// Copy writes the unrendered content of ref to path.
func (w *Writer) Copy(ref templates.Ref, path string, opts FileOptions) error {
	content, err := templates.Read(ref)
	if err != nil {
		return w.fail(path, err)
	}
	return w.Write(path, content, opts)
}

// RemoveIfExists deletes a superseded file. A missing file is not an error
// and is not recorded.
func (w *Writer) RemoveIfExists(path string) error {
	err := os.Remove(path)
	switch {
	case err == nil:
		w.record(path, output.StatusRemoved)
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return w.fail(path, fmt.Errorf("removing %s: %w", path, err))
	}
}

func (w *Writer) record(path, status string) {
	rel := w.rel(path)
	w.results = append(w.results, Result{Path: rel, Status: status})
	w.log.Debug("file", "path", rel, "status", status)
	if w.out != nil {
		fmt.Fprintln(w.out, output.FormatFileLine(rel, status))
	}
}

func (w *Writer) fail(path string, err error) error {
	w.record(path, output.StatusFailed)
	return err
}

func (w *Writer) rel(path string) string {
	if w.base == "" {
		return path
	}
	rel, err := filepath.Rel(w.base, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureMode applies mode to path and reports whether it changed.
func ensureMode(path string, mode fs.FileMode) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode().Perm() == mode.Perm() {
		return false, nil
	}
	if err := os.Chmod(path, mode); err != nil {
		return false, fmt.Errorf("chmod %s: %w", path, err)
	}
	return true, nil
}
