// Package catalog reads and writes the Backstage catalog document that
// stores generator answers between runs.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/output"
	"github.com/bcgov/nr-repository-composer/internal/version"
)

// Kind is the top-level document discriminator.
type Kind string

const (
	// KindComponent describes one deployable service or library.
	KindComponent Kind = "Component"

	// KindLocation points at a set of component documents in a monorepo.
	KindLocation Kind = "Location"
)

// APIVersion is stamped on new documents.
const APIVersion = "backstage.io/v1alpha1"

// Annotation namespaces. Each subsystem owns one prefix.
const (
	ComposerNamespace   = "composer.io.nrs.gov.bc.ca"
	PlaybookNamespace   = "playbook.io.nrs.gov.bc.ca"
	MigrationsNamespace = "migrations.io.nrs.gov.bc.ca"
)

var (
	// GeneratorsPath holds the comma-joined generator history.
	GeneratorsPath = AnnotationPath(ComposerNamespace + "/generators")

	// VersionPath holds the version of the tool that last saved the document.
	VersionPath = AnnotationPath(ComposerNamespace + "/version")
)

// AnnotationPath returns the document path of a metadata annotation.
func AnnotationPath(key string) []string {
	return []string{"metadata", "annotations", key}
}

// OpenOptions configures Open.
type OpenOptions struct {
	// IgnoreKindMismatch accepts a document of any kind.
	IgnoreKindMismatch bool

	// Table is the property table used for mapped access. Defaults to Properties.
	Table *Table
}

// KindMismatchError reports a document of an unexpected kind.
type KindMismatchError struct {
	Path     string
	Expected Kind
	Actual   Kind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("%s: document kind is %q, expected %q", e.Path, e.Actual, e.Expected)
}

// Unwrap lets errors.Is match ErrKindMismatch.
func (e *KindMismatchError) Unwrap() error {
	return oerrors.ErrKindMismatch
}

// Document is an in-memory catalog document. Only Save touches disk.
// Files holding several YAML documents keep all of them; root is the one
// the generators read and write.
type Document struct {
	path    string
	kind    Kind
	root    *yaml.Node
	docs    []*yaml.Node
	table   *Table
	existed bool

	// migrated records deprecated properties handled during this load.
	migrated map[string]bool
}

// New returns an empty document stamped with apiVersion and kind.
func New(path string, kind Kind, table *Table) *Document {
	if table == nil {
		table = Properties
	}
	root := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{newMapping()}}
	doc := &Document{
		path:     path,
		kind:     kind,
		root:     root,
		docs:     []*yaml.Node{root},
		table:    table,
		migrated: map[string]bool{},
	}
	doc.stampHeader()
	return doc
}

// Open loads the document at path, or returns a new one stamped with
// expected when the file is missing or empty.
func Open(path string, expected Kind, opts OpenOptions) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			output.Debug("catalog document not found, starting empty", "path", path, "kind", expected)
			return New(path, expected, opts.Table), nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data, expected, opts)
}

// Parse builds a document from raw bytes. path is kept for Save and messages.
func Parse(path string, data []byte, expected Kind, opts OpenOptions) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return New(path, expected, opts.Table), nil
	}

	docs, err := decodeAll(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", oerrors.ErrMalformedDocument, path, err)
	}
	if len(docs) == 0 {
		return New(path, expected, opts.Table), nil
	}
	for i, d := range docs {
		if d.Content[0].Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %s: document %d is not a mapping", oerrors.ErrMalformedDocument, path, i+1)
		}
	}
	root := selectDocument(docs, expected)

	table := opts.Table
	if table == nil {
		table = Properties
	}
	doc := &Document{
		path:     path,
		root:     root,
		docs:     docs,
		table:    table,
		existed:  true,
		migrated: map[string]bool{},
	}

	actual := Kind(doc.scalar([]string{"kind"}))
	switch {
	case actual == "":
		doc.kind = expected
		doc.stampHeader()
	case actual != expected && !opts.IgnoreKindMismatch:
		return nil, &KindMismatchError{Path: path, Expected: expected, Actual: actual}
	default:
		doc.kind = actual
	}

	doc.checkVersion()
	return doc, nil
}

// decodeAll reads every non-empty YAML document in data.
func decodeAll(data []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var docs []*yaml.Node
	for {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, err
		}
		if n.Kind == yaml.DocumentNode && len(n.Content) > 0 && !isNull(n.Content[0]) {
			docs = append(docs, &n)
		}
	}
}

// selectDocument picks the first document of the expected kind, falling
// back to the first document so kind checks see what the file leads with.
func selectDocument(docs []*yaml.Node, expected Kind) *yaml.Node {
	if expected != "" {
		for _, d := range docs {
			if n := lookupNode(d.Content[0], []string{"kind"}); n != nil && Kind(n.Value) == expected {
				return d
			}
		}
	}
	return docs[0]
}

func (d *Document) stampHeader() {
	if d.scalar([]string{"apiVersion"}) == "" {
		_ = d.SetByPath([]string{"apiVersion"}, APIVersion)
	}
	_ = d.SetByPath([]string{"kind"}, string(d.kind))
}

func (d *Document) checkVersion() {
	stamped := d.scalar(VersionPath)
	if version.CheckStamp(version.Version, stamped) == version.NewerMajor {
		output.Warn("catalog document was written by a newer major version",
			"path", d.path, "document", stamped, "cli", version.Version)
	}
}

// Path returns the file the document was loaded from and saves to.
func (d *Document) Path() string { return d.path }

// Kind returns the document kind.
func (d *Document) Kind() Kind { return d.kind }

// Existed reports whether the document was read from a non-empty file.
func (d *Document) Existed() bool { return d.existed }

// Table returns the property table used for mapped access.
func (d *Document) Table() *Table { return d.table }

func (d *Document) mapping() *yaml.Node {
	return d.root.Content[0]
}

// scalar returns the raw text of a scalar at path, or "".
func (d *Document) scalar(path []string) string {
	n := lookupNode(d.mapping(), path)
	if n == nil || n.Kind != yaml.ScalarNode || isNull(n) {
		return ""
	}
	return n.Value
}

// GetByPath returns the decoded value at path and whether it is present.
func (d *Document) GetByPath(path []string) (any, bool) {
	n := lookupNode(d.mapping(), path)
	if n == nil {
		return nil, false
	}
	v, err := decodeNode(n)
	if err != nil || v == nil {
		return nil, false
	}
	return v, true
}

// GetByProperty returns a mapped value. CSV sequences are joined with
// commas. An absent value returns nil.
func (d *Document) GetByProperty(name string) (any, error) {
	m, err := d.table.Lookup(name)
	if err != nil {
		return nil, err
	}
	n := lookupNode(d.mapping(), m.Path)
	if n == nil {
		return nil, nil
	}
	if m.CSV && n.Kind == yaml.SequenceNode {
		return joinSequence(n), nil
	}
	v, err := decodeNode(n)
	if err != nil || v == nil || m.Inverse == nil {
		return v, err
	}
	return m.Inverse(v), nil
}

// GetString returns a mapped value formatted as a string, "" when absent.
func (d *Document) GetString(name string) (string, error) {
	v, err := d.GetByProperty(name)
	if err != nil || v == nil {
		return "", err
	}
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

// SetByPath stores value at path. A nil value is ignored.
func (d *Document) SetByPath(path []string, value any) error {
	if value == nil {
		return nil
	}
	n, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", strings.Join(path, "."), err)
	}
	if err := setNode(d.mapping(), path, n); err != nil {
		return fmt.Errorf("setting %s: %w", strings.Join(path, "."), err)
	}
	return nil
}

// SetByProperty stores a mapped value, honouring the mapping's CSV,
// Transform and WriteEmpty flags.
func (d *Document) SetByProperty(name string, value any) error {
	m, err := d.table.Lookup(name)
	if err != nil {
		return err
	}
	return d.setMapped(m, value)
}

func (d *Document) setMapped(m PropertyMapping, value any) error {
	if value == nil {
		return nil
	}
	if s, ok := value.(string); ok && s == "" && !m.WriteEmpty {
		d.DeleteByPath(m.Path)
		return nil
	}
	if m.Transform != nil {
		value = m.Transform(value)
	}
	if m.CSV {
		if _, isList := value.([]string); !isList {
			value = splitCSV(fmt.Sprint(value))
		}
	}
	return d.SetByPath(m.Path, value)
}

// DeleteByPath removes the value at path and reports whether it existed.
func (d *Document) DeleteByPath(path []string) bool {
	return deleteNode(d.mapping(), path)
}

// DeleteByProperty removes a mapped value.
func (d *Document) DeleteByProperty(name string) error {
	m, err := d.table.Lookup(name)
	if err != nil {
		return err
	}
	d.DeleteByPath(m.Path)
	return nil
}

// Generators returns the generator history in the order generators ran.
func (d *Document) Generators() []string {
	n := lookupNode(d.mapping(), GeneratorsPath)
	if n == nil {
		return []string{}
	}
	if n.Kind == yaml.SequenceNode {
		return splitCSV(joinSequence(n))
	}
	return splitCSV(n.Value)
}

// HasGenerator reports whether name is in the generator history.
func (d *Document) HasGenerator(name string) bool {
	for _, g := range d.Generators() {
		if g == name {
			return true
		}
	}
	return false
}

// AddGenerator appends name to the generator history unless present.
func (d *Document) AddGenerator(name string) {
	if d.HasGenerator(name) {
		return
	}
	history := append(d.Generators(), name)
	_ = d.SetByPath(GeneratorsPath, strings.Join(history, ","))
}

// Bytes serializes every document of the file with two-space indentation.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	for _, n := range d.docs {
		if err := enc.Encode(n); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", d.path, err)
		}
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", d.path, err)
	}
	return buf.Bytes(), nil
}

// Save stamps the tool version and writes the document atomically.
func (d *Document) Save() error {
	if err := d.SetByPath(VersionPath, version.Version); err != nil {
		return err
	}
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := writeFileAtomic(d.path, data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", d.path, err)
	}
	output.Debug("catalog document saved", "path", d.path, "kind", d.kind)
	d.existed = true
	return nil
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over path.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
