package gitutil

import (
	"path/filepath"

	"github.com/bcgov/nr-repository-composer/internal/output"
)

// Paths resolves generator output locations. Component files are written
// relative to the destination directory; repository-wide files such as
// GitHub workflows are written relative to the repository root.
type Paths struct {
	// Destination is the absolute directory the generator runs in.
	Destination string

	// RepoRoot is the git work tree root, or Destination outside a repository.
	RepoRoot string

	rel string
}

// ResolvePaths finds the repository around dest.
func ResolvePaths(dest string) (Paths, error) {
	abs, err := canonical(dest)
	if err != nil {
		return Paths{}, err
	}
	p := Paths{Destination: abs, RepoRoot: abs, rel: "."}
	repo, err := Discover(abs)
	if err != nil {
		output.Debug("no git repository found, using destination as root", "dir", abs)
		return p, nil
	}
	rel, err := repo.RelativePath(abs)
	if err != nil {
		return Paths{}, err
	}
	p.RepoRoot = repo.Root
	p.rel = rel
	return p, nil
}

// DestinationPath joins rel onto the destination directory.
func (p Paths) DestinationPath(rel ...string) string {
	return filepath.Join(append([]string{p.Destination}, rel...)...)
}

// RepoPath joins rel onto the repository root.
func (p Paths) RepoPath(rel ...string) string {
	return filepath.Join(append([]string{p.RepoRoot}, rel...)...)
}

// Relative returns the destination relative to the repository root, using
// forward slashes. It is "." when they are the same directory.
func (p Paths) Relative() string {
	if p.rel != "" {
		return p.rel
	}
	rel, err := filepath.Rel(p.RepoRoot, p.Destination)
	if err != nil {
		return "."
	}
	return filepath.ToSlash(rel)
}
