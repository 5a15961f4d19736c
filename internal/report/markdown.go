package report

import (
	"fmt"
	"strings"
)

// Anchor returns the README anchor of a generator, or "" when it has none.
type Anchor func(name string) string

// NextStepsMarkdown renders the generator steps of spec as a markdown list
// for the README section of self. Manual steps are left out and patterns
// never link back to self. It returns "" when nothing remains.
func NextStepsMarkdown(self string, spec Spec, names []string, anchor Anchor) string {
	var lines []string
	for _, step := range spec.NextSteps {
		if step.Generator == "" {
			continue
		}
		matched := ExpandPattern(step.Generator, names)
		var links []string
		for _, g := range matched {
			if strings.Contains(step.Generator, "*") && g == self {
				continue
			}
			links = append(links, markdownLink(g, anchor(g)))
		}
		if len(links) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s - %s", strings.Join(links, ", "), step.Description))
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n**Suggested Next Steps:**\n" + strings.Join(lines, "\n") + "\n"
}

func markdownLink(name, anchor string) string {
	if anchor == "" {
		return "`" + name + "`"
	}
	return fmt.Sprintf("[`%s`](#%s)", name, anchor)
}
