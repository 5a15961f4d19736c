// Package report renders the summary printed after a generator finishes and
// the "Suggested Next Steps" documentation derived from it.
package report

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bcgov/nr-repository-composer/internal/catalog"
	"github.com/bcgov/nr-repository-composer/internal/output"
)

// Step is one suggested next step. Generator may be empty (a manual step),
// a generator name, or a pattern with * wildcards such as "gh-*-build".
type Step struct {
	Generator   string
	Description string
}

// Spec describes what a generator reports when it completes.
type Spec struct {
	// Description summarizes what was accomplished.
	Description string

	// Workflows lists the main files created, computed from the answers.
	Workflows func(catalog.Answers) []string

	NextSteps []Step
}

// Files returns the workflow list for answers.
func (s Spec) Files(answers catalog.Answers) []string {
	if s.Workflows == nil {
		return nil
	}
	return s.Workflows(answers)
}

// Static returns a Workflows func yielding a fixed list.
func Static(files ...string) func(catalog.Answers) []string {
	return func(catalog.Answers) []string { return files }
}

// Linker returns the documentation URL of a generator.
type Linker func(name string) string

var (
	styleRule    = lipgloss.NewStyle().Foreground(output.ColorGreen).Bold(true)
	styleFiles   = lipgloss.NewStyle().Foreground(output.ColorCyan)
	styleSteps   = lipgloss.NewStyle().Foreground(output.ColorYellow)
	styleStepGen = lipgloss.NewStyle().Foreground(output.ColorYellow).Bold(true)
)

const ruleWidth = 60

// PatternRegexp converts a generator pattern with * wildcards to an anchored
// regular expression.
func PatternRegexp(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}

// ExpandPattern returns the names matching pattern, in the order of names. A
// pattern without wildcards is returned as is.
func ExpandPattern(pattern string, names []string) []string {
	if !strings.Contains(pattern, "*") {
		return []string{pattern}
	}
	re := PatternRegexp(pattern)
	var matched []string
	for _, n := range names {
		if re.MatchString(n) {
			matched = append(matched, n)
		}
	}
	return matched
}

// Render writes the completion report of a generator.
func Render(w io.Writer, spec Spec, answers catalog.Answers, names []string, link Linker) {
	rule := styleRule.Render(strings.Repeat("═", ruleWidth))
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, styleRule.Render("  Generator Complete"))
	fmt.Fprintln(w, rule)

	if spec.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, spec.Description)
	}

	if files := spec.Files(answers); len(files) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleFiles.Bold(true).Render("Files Created:"))
		for _, f := range files {
			fmt.Fprintln(w, styleFiles.Render("   • "+f))
		}
	}

	if len(spec.NextSteps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styleSteps.Bold(true).Render("Suggested Next Steps:"))
		for i, step := range spec.NextSteps {
			fmt.Fprintln(w, renderStep(i+1, step, names, link))
		}
	}
	fmt.Fprintln(w)
}

func renderStep(n int, step Step, names []string, link Linker) string {
	if step.Generator == "" {
		return styleSteps.Render(fmt.Sprintf("   %d. %s", n, step.Description))
	}

	matched := ExpandPattern(step.Generator, names)
	linked := make([]string, len(matched))
	for i, g := range matched {
		linked[i] = output.Hyperlink(styleStepGen.Render(g), link(g))
	}
	return styleSteps.Render(fmt.Sprintf("   %d. Run ", n)) +
		strings.Join(linked, styleSteps.Render(", ")) +
		styleSteps.Render(" - "+step.Description)
}
