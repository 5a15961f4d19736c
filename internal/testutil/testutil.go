// Package testutil provides test helpers for generator and CLI tests.
package testutil

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"testing"
)

// fixtures holds sample repositories, one directory each.
//
//go:embed all:fixtures
var fixtures embed.FS

// WriteFile creates a file with the given content below dir, creating parent
// directories. rel uses forward slashes.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", p, err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", p, err)
	}
	return p
}

// ReadFile returns the content of a file below dir.
func ReadFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", rel, err)
	}
	return string(data)
}

// Fixture returns the content of one fixture file, e.g.
// Fixture(t, "maven-component", "catalog-info.yaml").
func Fixture(t *testing.T, name, rel string) string {
	t.Helper()
	data, err := fixtures.ReadFile(path.Join("fixtures", name, rel))
	if err != nil {
		t.Fatalf("fixture %s/%s: %v", name, rel, err)
	}
	return string(data)
}

// CopyFixture copies a fixture repository into a fresh temporary directory
// and returns that directory.
func CopyFixture(t *testing.T, name string) string {
	t.Helper()
	dst := t.TempDir()
	root := path.Join("fixtures", name)

	err := fs.WalkDir(fixtures, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := fixtures.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	if err != nil {
		t.Fatalf("failed to copy fixture %s: %v", name, err)
	}
	return dst
}
