package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveConfigPath(t *testing.T) {
	t.Run("flag precedence", func(t *testing.T) {
		t.Setenv("NRC_CONFIG", "/env/config.yaml")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{FlagValue: "/flag/config.yaml"})
		require.NoError(t, err)

		assert.Equal(t, "/flag/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceFlag, result.Source)
		assert.Equal(t, "/env/config.yaml", result.Shadowed[SourceEnv])
		assert.NotEmpty(t, result.Shadowed[SourceDefault])
	})

	t.Run("env precedence", func(t *testing.T) {
		t.Setenv("NRC_CONFIG", "/env/config.yaml")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Equal(t, "/env/config.yaml", result.ConfigPath)
		assert.Equal(t, SourceEnv, result.Source)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("NRC_CONFIG", "")

		result, err := ResolveConfigPath(ResolveConfigPathOptions{})
		require.NoError(t, err)

		assert.Contains(t, result.ConfigPath, ".nrc")
		assert.Equal(t, SourceDefault, result.Source)
		assert.Empty(t, result.Shadowed)
	})
}

func TestResolveHeadless(t *testing.T) {
	tests := []struct {
		name       string
		opts       ResolveHeadlessOptions
		wantValue  bool
		wantSource ConfigSource
		wantShadow bool
	}{
		{
			name:       "flag overrides env",
			opts:       ResolveHeadlessOptions{FlagSet: true, FlagValue: false, Loaded: true, LoadedSource: SourceEnv},
			wantValue:  false,
			wantSource: SourceFlag,
			wantShadow: true,
		},
		{
			name:       "env used when flag unset",
			opts:       ResolveHeadlessOptions{Loaded: true, LoadedSource: SourceEnv},
			wantValue:  true,
			wantSource: SourceEnv,
		},
		{
			name:       "default when nothing set",
			opts:       ResolveHeadlessOptions{},
			wantValue:  false,
			wantSource: SourceDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rv := ResolveHeadless(tt.opts)
			assert.Equal(t, tt.wantValue, rv.Value)
			assert.Equal(t, tt.wantSource, rv.Source)
			assert.Equal(t, tt.wantShadow, len(rv.Shadowed) > 0)
		})
	}
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "flag", string(SourceFlag))
	assert.Equal(t, "env", string(SourceEnv))
	assert.Equal(t, "config", string(SourceConfig))
	assert.Equal(t, "default", string(SourceDefault))
}
