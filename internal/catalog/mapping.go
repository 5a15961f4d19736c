package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

// MigrateFunc moves a deprecated stored value to its replacement. It may set
// other properties, record generators or delete its own path.
type MigrateFunc func(doc *Document, value any) error

// PropertyMapping binds a document location to a flat answer key.
type PropertyMapping struct {
	// Path locates the value, e.g. ["metadata", "annotations", "playbook.io.nrs.gov.bc.ca/pomRoot"].
	Path []string

	// Property is the answer key. Unique within a Table.
	Property string

	// WriteEmpty stores "" instead of removing the path.
	WriteEmpty bool

	// CSV stores a sequence in the document and a comma-joined string in answers.
	CSV bool

	// Transform converts an answer before it is stored.
	Transform func(any) any

	// Inverse undoes Transform when the value is read back as an answer.
	Inverse func(any) any

	// Deprecated marks the mapping as legacy and migrates it on load.
	Deprecated MigrateFunc
}

// DottedPath returns the path joined with dots, for messages.
func (m PropertyMapping) DottedPath() string {
	return strings.Join(m.Path, ".")
}

// Table is an ordered set of mappings with a reverse index by property.
type Table struct {
	mappings []PropertyMapping
	index    map[string]int
}

// NewTable builds a table. A duplicate or empty property name panics: the
// table is static and a bad entry is a programming error.
func NewTable(mappings ...PropertyMapping) *Table {
	t := &Table{
		mappings: make([]PropertyMapping, 0, len(mappings)),
		index:    make(map[string]int, len(mappings)),
	}
	for _, m := range mappings {
		if m.Property == "" || len(m.Path) == 0 {
			panic(fmt.Sprintf("catalog: mapping %q has no property or path", m.DottedPath()))
		}
		if _, dup := t.index[m.Property]; dup {
			panic(fmt.Sprintf("catalog: duplicate property %q", m.Property))
		}
		t.index[m.Property] = len(t.mappings)
		t.mappings = append(t.mappings, m)
	}
	return t
}

// Lookup returns the mapping for a property name.
func (t *Table) Lookup(name string) (PropertyMapping, error) {
	i, ok := t.index[name]
	if !ok {
		return PropertyMapping{}, fmt.Errorf("%w: %q", oerrors.ErrUnknownProperty, name)
	}
	return t.mappings[i], nil
}

// MustLookup is Lookup for names known at compile time.
func (t *Table) MustLookup(name string) PropertyMapping {
	m, err := t.Lookup(name)
	if err != nil {
		panic(err)
	}
	return m
}

// Has reports whether name is mapped.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Mappings returns the mappings in declaration order.
func (t *Table) Mappings() []PropertyMapping {
	out := make([]PropertyMapping, len(t.mappings))
	copy(out, t.mappings)
	return out
}

// Len returns the number of mappings.
func (t *Table) Len() int {
	return len(t.mappings)
}

// Answers is the flat answer record keyed by property name.
type Answers map[string]any

// Clone returns a shallow copy.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Merge returns a copy of a overlaid with b; b wins on conflict.
func (a Answers) Merge(b Answers) Answers {
	out := a.Clone()
	for k, v := range b {
		out[k] = v
	}
	return out
}

// String returns the value as a string, or "" when absent.
func (a Answers) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Bool returns the value as a bool. Strings "true"/"yes"/"y" count as true.
func (a Answers) Bool(name string) bool {
	switch v := a[name].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y":
			return true
		}
	}
	return false
}

// Extract reads every mapped path present in doc into a new record. CSV
// sequences are joined with commas and transformed values are inverted.
func Extract(doc *Document, table *Table) (Answers, error) {
	answers := Answers{}
	for _, m := range table.mappings {
		n := lookupNode(doc.mapping(), m.Path)
		if n == nil {
			continue
		}

		var (
			v   any
			err error
		)
		if m.CSV && n.Kind == yaml.SequenceNode {
			v = joinSequence(n)
		} else {
			v, err = decodeNode(n)
		}
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", m.DottedPath(), err)
		}
		if v == nil {
			continue
		}
		if m.Inverse != nil {
			v = m.Inverse(v)
		}
		answers[m.Property] = v
	}
	return answers, nil
}

// Write stores every answer that has a mapping. A missing or nil answer
// leaves the path untouched; "" removes it unless the mapping allows empty
// values.
func Write(doc *Document, table *Table, answers Answers) error {
	for _, m := range table.mappings {
		v, ok := answers[m.Property]
		if !ok || v == nil {
			continue
		}
		if err := doc.setMapped(m, v); err != nil {
			return err
		}
	}
	return nil
}
