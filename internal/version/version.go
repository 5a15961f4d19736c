// Package version provides version information for the nrc CLI.
package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("nrc:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
}

// Compatibility describes how a catalog document's version stamp relates to
// the running CLI.
type Compatibility string

const (
	// Compatible means the document was written by this or an older release
	// of the same major version.
	Compatible Compatibility = "compatible"

	// NewerMajor means the document was written by a newer major release.
	NewerMajor Compatibility = "newer major version"

	// OlderMajor means the document was written by an older major release.
	OlderMajor Compatibility = "older major version"

	// Unknown means either version could not be parsed (dev builds, hand edits).
	Unknown Compatibility = "unknown"
)

// CheckStamp compares a stamped document version against the running CLI
// version. Only the MAJOR component decides compatibility.
func CheckStamp(cliVersion, stamped string) Compatibility {
	if strings.TrimSpace(stamped) == "" {
		return Unknown
	}
	cli, err := semver.NewVersion(cliVersion)
	if err != nil {
		return Unknown
	}
	doc, err := semver.NewVersion(stamped)
	if err != nil {
		return Unknown
	}

	switch {
	case doc.Major() > cli.Major():
		return NewerMajor
	case doc.Major() < cli.Major():
		return OlderMajor
	default:
		return Compatible
	}
}
