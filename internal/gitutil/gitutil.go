// Package gitutil locates the git repository around a destination directory
// and derives values from it.
package gitutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/go-git/go-git/v5"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

// ErrNotARepository is returned by Discover outside a git work tree.
var ErrNotARepository = fmt.Errorf("not a git repository: %w", oerrors.ErrNotFound)

// Repo is an opened git work tree.
type Repo struct {
	// Root is the absolute work tree root.
	Root string

	repo *git.Repository
}

// Discover opens the repository containing dir, searching parent directories.
func Discover(dir string) (*Repo, error) {
	abs, err := canonical(dir)
	if err != nil {
		return nil, err
	}
	r, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", abs, ErrNotARepository)
		}
		return nil, fmt.Errorf("opening repository at %s: %w", abs, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("opening work tree at %s: %w", abs, err)
	}
	root, err := canonical(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	return &Repo{Root: root, repo: r}, nil
}

// OriginURL returns the first URL of the origin remote, or "" without one.
func (r *Repo) OriginURL() (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", nil
	}
	return urls[0], nil
}

// RelativePath returns dir relative to the work tree root, "." for the root.
func (r *Repo) RelativePath(dir string) (string, error) {
	abs, err := canonical(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil {
		return "", fmt.Errorf("relating %s to %s: %w", abs, r.Root, err)
	}
	return filepath.ToSlash(rel), nil
}

var slugPattern = regexp.MustCompile(`^(?:(?:https?|ssh|git)://)?(?:[^@/]+@)?(?:www\.)?github\.com[/:]([A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+?)(?:\.git)?/?$`)

// GitHubSlug extracts "owner/repository" from a GitHub remote URL. Other
// hosts yield "".
func GitHubSlug(url string) string {
	m := slugPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// DefaultSlug returns the GitHub slug of the origin of the repository
// containing dir, or "" when it cannot be determined.
func DefaultSlug(dir string) string {
	repo, err := Discover(dir)
	if err != nil {
		return ""
	}
	url, err := repo.OriginURL()
	if err != nil {
		return ""
	}
	return GitHubSlug(url)
}

func canonical(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
