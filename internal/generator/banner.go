package generator

import (
	"fmt"
	"strings"

	"github.com/bcgov/nr-repository-composer/internal/output"
)

// Render returns the framed banner text.
func (b *Banner) Render() string {
	var sb strings.Builder
	sb.WriteString(output.StyleAction.Render(b.Title))
	if b.Subtitle != "" {
		sb.WriteString("\n\n")
		sb.WriteString(b.Subtitle)
	}
	if len(b.Links) > 0 {
		sb.WriteString("\n")
		for _, l := range b.Links {
			fmt.Fprintf(&sb, "\n%s: %s", l.Label, output.Hyperlink(l.URL, l.URL))
		}
	}
	return output.StyleBanner.Render(sb.String())
}
