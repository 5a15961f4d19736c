package output

import (
	"fmt"
	"slices"
	"strings"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

// OutputFormat is the value of an -o flag.
type OutputFormat string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML OutputFormat = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON OutputFormat = "json"

	// FormatTable outputs in table format.
	FormatTable OutputFormat = "table"
)

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Valid checks if the output format is known.
func (f OutputFormat) Valid() bool {
	return slices.Contains(ValidFormats(), string(f))
}

// ParseOutputFormat parses a format name, case-insensitively. "yml" is
// YAML. Unknown names yield false.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "yml" {
		return FormatYAML, true
	}
	f := OutputFormat(name)
	return f, f.Valid()
}

// ParseFormatFlag parses an -o flag for a command that supports only the
// allowed formats. Anything else is a validation error naming them.
func ParseFormatFlag(flag string, allowed ...OutputFormat) (OutputFormat, error) {
	f, ok := ParseOutputFormat(flag)
	if ok && slices.Contains(allowed, f) {
		return f, nil
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = a.String()
	}
	return "", oerrors.NewValidationError(
		fmt.Sprintf("unsupported output format %q", flag), "", "output",
		"use one of "+strings.Join(names, ", "))
}

// ValidFormats returns the names of every output format.
func ValidFormats() []string {
	return []string{"yaml", "json", "table"}
}
