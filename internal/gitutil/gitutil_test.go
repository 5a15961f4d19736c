package gitutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/bcgov/nr-repository-composer/internal/errors"
)

func initRepo(t *testing.T, origin string) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	if origin != "" {
		_, err = r.CreateRemote(&config.RemoteConfig{Name: "origin", URLs: []string{origin}})
		require.NoError(t, err)
	}
	return dir
}

func TestGitHubSlug(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/bcgov/nr-repository-composer", "bcgov/nr-repository-composer"},
		{"https://github.com/bcgov/nr-repository-composer.git", "bcgov/nr-repository-composer"},
		{"https://www.github.com/bcgov-c/edqa-war/", "bcgov-c/edqa-war"},
		{"git@github.com:bcgov-c/edqa-war.git", "bcgov-c/edqa-war"},
		{"ssh://git@github.com/bcgov/repo.git", "bcgov/repo"},
		{"github.com/owner/repo", "owner/repo"},
		{"https://gitlab.com/owner/repo", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, GitHubSlug(tt.url))
		})
	}
}

func TestDiscover(t *testing.T) {
	root := initRepo(t, "git@github.com:bcgov/example.git")
	sub := filepath.Join(root, "services", "api")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := Discover(sub)
	require.NoError(t, err)
	assert.Equal(t, root, repo.Root)

	rel, err := repo.RelativePath(sub)
	require.NoError(t, err)
	assert.Equal(t, "services/api", rel)

	url, err := repo.OriginURL()
	require.NoError(t, err)
	assert.Equal(t, "git@github.com:bcgov/example.git", url)

	assert.Equal(t, "bcgov/example", DefaultSlug(sub))
}

func TestDiscover_NoOrigin(t *testing.T) {
	root := initRepo(t, "")

	repo, err := Discover(root)
	require.NoError(t, err)
	url, err := repo.OriginURL()
	require.NoError(t, err)
	assert.Empty(t, url)
	assert.Empty(t, DefaultSlug(root))
}

func TestDiscover_NotARepository(t *testing.T) {
	_, err := Discover(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotARepository))
	assert.True(t, errors.Is(err, oerrors.ErrNotFound))
}

func TestResolvePaths(t *testing.T) {
	t.Run("inside repository", func(t *testing.T) {
		root := initRepo(t, "")
		sub := filepath.Join(root, "api")
		require.NoError(t, os.MkdirAll(sub, 0o755))

		p, err := ResolvePaths(sub)
		require.NoError(t, err)
		assert.Equal(t, root, p.RepoRoot)
		assert.Equal(t, sub, p.Destination)
		assert.Equal(t, "api", p.Relative())
		assert.Equal(t, filepath.Join(root, ".github", "workflows", "x.yaml"), p.RepoPath(".github", "workflows", "x.yaml"))
		assert.Equal(t, filepath.Join(sub, "catalog-info.yaml"), p.DestinationPath("catalog-info.yaml"))
	})

	t.Run("outside repository", func(t *testing.T) {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)

		p, err := ResolvePaths(dir)
		require.NoError(t, err)
		assert.Equal(t, dir, p.RepoRoot)
		assert.Equal(t, ".", p.Relative())
	})
}
