package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty string", "", ""},
		{"no tilde", "/absolute/path", "/absolute/path"},
		{"relative path without tilde", "relative/path", "relative/path"},
		{"tilde only", "~", homeDir},
		{"tilde with slash", "~/.nrc/config.yaml", filepath.Join(homeDir, ".nrc", "config.yaml")},
		{"tilde username unsupported", "~other/file", "~other/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(paths.HomeDir))
	assert.Equal(t, ".nrc", filepath.Base(paths.HomeDir))
	assert.Equal(t, filepath.Join(paths.HomeDir, "config.yaml"), paths.ConfigFile)
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env wins", func(t *testing.T) {
		t.Setenv("NRC_CONFIG", "/tmp/custom.yaml")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom.yaml", got)
	})

	t.Run("default path", func(t *testing.T) {
		t.Setenv("NRC_CONFIG", "")
		got, err := GetConfigFile()
		require.NoError(t, err)
		assert.Contains(t, got, ".nrc")
	})
}
