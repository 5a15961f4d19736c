// Package templates provides the embedded generator templates and rendering.
//
// Templates live under files/<generator>/. A file ending in .tmpl is a
// text/template using <% %> delimiters so GitHub expressions (${{ }}) and
// Ansible/Jinja expressions ({{ }}) pass through untouched. Any other file is
// copied byte for byte.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

//go:embed all:files
var embedded embed.FS

// TemplateFS is the template tree rooted at files/.
var TemplateFS = mustSub(embedded, "files")

// Suffix marks a file that is rendered rather than copied.
const Suffix = ".tmpl"

// CommonDir holds templates shared by several generators.
const CommonDir = "common"

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// Ref names a template by generator directory and target file name, without
// the .tmpl suffix, e.g. "gh-maven-build/build-release.yaml".
type Ref string

// Join builds a Ref from path elements.
func Join(elem ...string) Ref {
	return Ref(path.Join(elem...))
}

func (r Ref) String() string {
	return string(r)
}

// Base returns the target file name of the template.
func (r Ref) Base() string {
	return path.Base(string(r))
}

// locate returns the embedded file backing ref and whether it is a template.
func locate(ref Ref) (string, bool, error) {
	name := path.Clean(string(ref))
	if _, err := fs.Stat(TemplateFS, name+Suffix); err == nil {
		return name + Suffix, true, nil
	}
	if _, err := fs.Stat(TemplateFS, name); err == nil {
		return name, false, nil
	}
	return "", false, oerrors.Wrap(oerrors.ErrNotFound, fmt.Sprintf("template %s", ref))
}

// Exists reports whether ref names an embedded file.
func Exists(ref Ref) bool {
	_, _, err := locate(ref)
	return err == nil
}

// Read returns the raw, unrendered content of ref.
func Read(ref Ref) ([]byte, error) {
	name, _, err := locate(ref)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(TemplateFS, name)
}

// List returns the refs of every file below dir, sorted. The .tmpl suffix is
// removed.
func List(dir string) ([]Ref, error) {
	var refs []Ref

	err := fs.WalkDir(TemplateFS, path.Clean(dir), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		refs = append(refs, Ref(strings.TrimSuffix(p, Suffix)))
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.Wrap(oerrors.ErrNotFound, fmt.Sprintf("template directory %s", dir))
		}
		return nil, fmt.Errorf("listing templates in %s: %w", dir, err)
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs, nil
}

// Rel returns ref relative to dir, for mapping a listed tree onto a
// destination directory.
func Rel(dir string, ref Ref) string {
	return strings.TrimPrefix(string(ref), path.Clean(dir)+"/")
}
