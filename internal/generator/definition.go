// Package generator runs generators: it loads the catalog document, resolves
// answers, lets the generator write files and compose other generators, and
// persists the answers back.
package generator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
	"github.com/bcgov/nr-repository-composer/internal/prompt"
	"github.com/bcgov/nr-repository-composer/internal/report"
)

// OptionType is the value type of an option.
type OptionType int

const (
	String OptionType = iota
	Bool
	Int
)

func (t OptionType) String() string {
	switch t {
	case Bool:
		return "bool"
	case Int:
		return "int"
	default:
		return "string"
	}
}

// ArgSpec declares a positional argument.
type ArgSpec struct {
	Name        string
	Description string
	Required    bool
	Default     string
}

// OptionSpec declares a named option.
type OptionSpec struct {
	Name        string
	Type        OptionType
	Default     any
	Description string
}

// Options are named option values.
type Options map[string]any

// String returns the option as a string; "" when unset.
func (o Options) String(name string) string {
	return catalog.Answers(o).String(name)
}

// Bool returns the option as a bool.
func (o Options) Bool(name string) bool {
	return catalog.Answers(o).Bool(name)
}

// Int returns the option as an int; 0 when unset.
func (o Options) Int(name string) int {
	switch v := o[name].(type) {
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(strings.TrimSpace(v))
		return n
	}
	return 0
}

// Banner is shown before prompting in interactive runs.
type Banner struct {
	Title    string
	Subtitle string
	Links    []Link
}

// Link is a labelled URL in a banner.
type Link struct {
	Label string
	URL   string
}

// Hook is a lifecycle callback.
type Hook func(ctx context.Context, r *Run) error

// Definition declares a generator.
type Definition struct {
	Name        string
	Description string

	// Kind is the catalog document kind the generator reads and writes. An
	// empty kind means the generator has no document: it works from its
	// arguments and options only.
	Kind catalog.Kind

	// IgnoreKindMismatch opens a document of any kind.
	IgnoreKindMismatch bool

	// Anchor is the README section of the generator.
	Anchor string

	Arguments []ArgSpec
	Options   []OptionSpec
	Prompts   []prompt.Spec

	Banner *Banner

	// Initializing runs after the document is loaded and migrated.
	Initializing Hook

	// Writing materializes files and composes other generators.
	Writing Hook

	// Report is printed at the end of interactive runs.
	Report *report.Spec

	// Hidden generators are only composed, never listed.
	Hidden bool
}

// PromptNames returns the names of the generator's prompts.
func (d *Definition) PromptNames() []string {
	return prompt.Names(d.Prompts)
}

func (d *Definition) hasPrompt(name string) bool {
	for _, s := range d.Prompts {
		if s.Name == name {
			return true
		}
	}
	return false
}

// bind maps positional args and options onto the declarations, applying
// defaults and coercing option types.
func (d *Definition) bind(args []string, opts Options) (map[string]string, Options, error) {
	if len(args) > len(d.Arguments) {
		return nil, nil, oerrors.NewValidationError(
			fmt.Sprintf("%s accepts at most %d argument(s), got %d", d.Name, len(d.Arguments), len(args)),
			"", "", "")
	}

	bound := make(map[string]string, len(d.Arguments))
	for i, spec := range d.Arguments {
		v := spec.Default
		if i < len(args) && args[i] != "" {
			v = args[i]
		}
		if v == "" && spec.Required {
			return nil, nil, oerrors.NewValidationError(
				fmt.Sprintf("missing required argument %q", spec.Name),
				"", spec.Name, fmt.Sprintf("usage: %s", d.Usage()))
		}
		bound[spec.Name] = v
	}

	known := make(map[string]OptionSpec, len(d.Options))
	for _, spec := range d.Options {
		known[spec.Name] = spec
	}
	for name := range opts {
		if _, ok := known[name]; !ok {
			return nil, nil, oerrors.NewValidationError(
				fmt.Sprintf("unknown option %q for %s", name, d.Name), "", name, "")
		}
	}

	values := make(Options, len(d.Options))
	for _, spec := range d.Options {
		raw, ok := opts[spec.Name]
		if !ok || raw == nil {
			raw = spec.Default
		}
		v, err := coerce(spec, raw)
		if err != nil {
			return nil, nil, err
		}
		values[spec.Name] = v
	}
	return bound, values, nil
}

func coerce(spec OptionSpec, raw any) (any, error) {
	if raw == nil {
		switch spec.Type {
		case Bool:
			return false, nil
		case Int:
			return 0, nil
		default:
			return "", nil
		}
	}
	switch spec.Type {
	case Bool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil && strings.TrimSpace(v) != "" {
				return nil, invalidOption(spec, raw)
			}
			return b, nil
		}
	case Int:
		switch v := raw.(type) {
		case int:
			return v, nil
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return nil, invalidOption(spec, raw)
			}
			return n, nil
		}
	default:
		return fmt.Sprint(raw), nil
	}
	return nil, invalidOption(spec, raw)
}

func invalidOption(spec OptionSpec, raw any) error {
	return oerrors.NewValidationError(
		fmt.Sprintf("option %q expects a %s, got %v", spec.Name, spec.Type, raw), "", spec.Name, "")
}

// Usage renders the positional argument synopsis, e.g.
// "pd-java-playbook <projectName> <serviceName> [playbookPath]".
func (d *Definition) Usage() string {
	parts := []string{d.Name}
	for _, a := range d.Arguments {
		if a.Required {
			parts = append(parts, "<"+a.Name+">")
		} else {
			parts = append(parts, "["+a.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}
