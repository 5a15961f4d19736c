// Package prompt decides which questions a generator asks and collects the
// answers through a Prompter.
package prompt

import (
	"fmt"
	"strings"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/output"
)

// Type selects how a question is rendered and what value it yields.
type Type int

const (
	// Input yields a string.
	Input Type = iota
	// Confirm yields a bool.
	Confirm
	// Select yields one of Choices.
	Select
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case Confirm:
		return "confirm"
	case Select:
		return "select"
	default:
		return "input"
	}
}

// Spec is one question. Specs are values: WithWhen and WithDefault return
// modified copies so shared catalogue entries are never mutated.
type Spec struct {
	// Name is the answer key. It matches a catalog property to persist.
	Name string

	Type    Type
	Message string
	Choices []string

	// Default computes the pre-filled value from the answers gathered so far.
	Default func(catalog.Answers) any

	// When hides the question for this run when it returns false.
	When func(catalog.Answers) bool

	// Validate rejects an answer; the question is asked again.
	Validate func(any) error

	// Description and Example are printed by --help-prompts.
	Description string
	Example     string
}

// Static returns a Default that always yields v.
func Static(v any) func(catalog.Answers) any {
	return func(catalog.Answers) any { return v }
}

// WithWhen returns a copy of s shown only when fn returns true.
func (s Spec) WithWhen(fn func(catalog.Answers) bool) Spec {
	s.When = fn
	return s
}

// WithDefault returns a copy of s with a computed default.
func (s Spec) WithDefault(fn func(catalog.Answers) any) Spec {
	s.Default = fn
	return s
}

// WithDefaultValue returns a copy of s with a literal default.
func (s Spec) WithDefaultValue(v any) Spec {
	s.Default = Static(v)
	return s
}

// Usage renders the --help-prompts entry for s.
func (s Spec) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (key: %s)\n", output.StyleAction.Render(s.Message), s.Name)
	description := s.Description
	if description == "" {
		description = "unknown"
	}
	fmt.Fprintf(&b, "    Description: %s\n", description)
	if s.Example != "" {
		fmt.Fprintf(&b, "    Example: %s\n", s.Example)
	}
	return b.String()
}

// UsageText renders the usage of every spec, in order.
func UsageText(specs []Spec) string {
	var b strings.Builder
	b.WriteString(output.StyleAction.Render("Prompts"))
	b.WriteString("\n\n")
	for _, s := range specs {
		b.WriteString(s.Usage())
		b.WriteString("\n")
	}
	return b.String()
}

// Names returns the names of specs in order.
func Names(specs []Spec) []string {
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}
