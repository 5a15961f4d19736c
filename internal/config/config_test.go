package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "catalog-info.yaml", cfg.CatalogFile)
	assert.Equal(t, DefaultReadmeBaseURL, cfg.ReadmeBaseURL)
	assert.False(t, cfg.Headless)
	assert.Nil(t, cfg.Log.Timestamps)
}

func TestWithDefaults(t *testing.T) {
	t.Run("fills empty values", func(t *testing.T) {
		cfg := (&Config{}).WithDefaults()
		assert.Equal(t, DefaultCatalogFile, cfg.CatalogFile)
		assert.Equal(t, DefaultReadmeBaseURL, cfg.ReadmeBaseURL)
	})

	t.Run("keeps set values and does not mutate receiver", func(t *testing.T) {
		orig := &Config{CatalogFile: "other.yaml"}
		cfg := orig.WithDefaults()
		assert.Equal(t, "other.yaml", cfg.CatalogFile)
		assert.Empty(t, orig.ReadmeBaseURL)
	})
}

func TestResolvedValue(t *testing.T) {
	rv := ResolvedValue{
		Key:    "headless",
		Value:  true,
		Source: SourceEnv,
		Shadowed: map[ConfigSource]any{
			SourceConfig: false,
		},
	}
	assert.Equal(t, "headless", rv.Key)
	assert.Equal(t, SourceEnv, rv.Source)
	assert.Equal(t, false, rv.Shadowed[SourceConfig])
}
