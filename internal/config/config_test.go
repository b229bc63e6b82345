package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("should create default config when file does not exist", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := LoadConfig(tmpDir)

		require.NoError(t, err)
		assert.Equal(t, "en", cfg.Language)
		assert.Equal(t, string(ProviderOpenRouter), cfg.ActiveProvider)
		assert.Equal(t, 100, cfg.MaxFileSizeKB)
		assert.Equal(t, 10, cfg.MaxFiles)
		assert.Equal(t, "feat", cfg.DefaultCommitType)
		assert.NotEmpty(t, cfg.Models.Fast)
		assert.NotEmpty(t, cfg.Models.Thinking)
		assert.FileExists(t, filepath.Join(tmpDir, ".commit-wizard", "config.json"))
	})

	t.Run("should load an existing config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".commit-wizard")
		require.NoError(t, os.MkdirAll(configDir, 0755))

		saved := &Config{
			ActiveProvider:    "gemini",
			Language:          "es",
			UseEmoji:          false,
			MaxFileSizeKB:     200,
			MaxFiles:          25,
			DefaultCommitType: "chore",
			PathFile:          filepath.Join(configDir, "config.json"),
			Models:            DefaultModelTable(ProviderGemini),
		}
		data, err := json.MarshalIndent(saved, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(saved.PathFile, data, 0600))

		cfg, err := LoadConfig(tmpDir)

		require.NoError(t, err)
		assert.Equal(t, "gemini", cfg.ActiveProvider)
		assert.Equal(t, "es", cfg.Language)
		assert.Equal(t, 200, cfg.MaxFileSizeKB)
		assert.Equal(t, 25, cfg.MaxFiles)
		assert.Equal(t, "chore", cfg.DefaultCommitType)
	})

	t.Run("should accept a direct json path", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "custom.json")

		cfg, err := LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, path, cfg.PathFile)
	})

	t.Run("should reject malformed json", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".commit-wizard")
		require.NoError(t, os.MkdirAll(configDir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), []byte("{malformed json"), 0600))

		_, err := LoadConfig(tmpDir)

		assert.Error(t, err)
	})

	t.Run("should reject invalid loaded configuration", func(t *testing.T) {
		tmpDir := t.TempDir()
		configDir := filepath.Join(tmpDir, ".commit-wizard")
		require.NoError(t, os.MkdirAll(configDir, 0755))

		bad := &Config{Language: "", MaxFileSizeKB: -1}
		data, _ := json.MarshalIndent(bad, "", "  ")
		require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.json"), data, 0600))

		_, err := LoadConfig(tmpDir)

		assert.Error(t, err)
	})
}

func TestSaveConfig(t *testing.T) {
	t.Run("should persist changes", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfg, err := LoadConfig(tmpDir)
		require.NoError(t, err)

		cfg.Language = "es"
		cfg.Models.Default = "openai/gpt-4o-mini"
		require.NoError(t, SaveConfig(cfg))

		reloaded, err := LoadConfig(tmpDir)
		require.NoError(t, err)
		assert.Equal(t, "es", reloaded.Language)
		assert.Equal(t, "openai/gpt-4o-mini", reloaded.Models.Default)
	})

	t.Run("should reject invalid configuration", func(t *testing.T) {
		cfg := &Config{Language: "en", MaxFileSizeKB: -1, MaxFiles: 10}

		assert.Error(t, SaveConfig(cfg))
	})

	t.Run("should reject missing path", func(t *testing.T) {
		cfg := &Config{
			Language:      "en",
			MaxFileSizeKB: 100,
			MaxFiles:      10,
		}

		assert.Error(t, SaveConfig(cfg))
	})

	t.Run("should reject unknown default commit type", func(t *testing.T) {
		cfg := &Config{
			Language:          "en",
			MaxFileSizeKB:     100,
			MaxFiles:          10,
			DefaultCommitType: "feature",
			PathFile:          filepath.Join(t.TempDir(), "config.json"),
		}

		assert.Error(t, SaveConfig(cfg))
	})

	t.Run("should reject unsupported provider", func(t *testing.T) {
		cfg := &Config{
			ActiveProvider: "claude",
			Language:       "en",
			MaxFileSizeKB:  100,
			MaxFiles:       10,
			PathFile:       filepath.Join(t.TempDir(), "config.json"),
		}

		assert.Error(t, SaveConfig(cfg))
	})
}

func TestDefaultModelTable(t *testing.T) {
	tests := []struct {
		name     string
		provider Provider
	}{
		{name: "openrouter table", provider: ProviderOpenRouter},
		{name: "gemini table", provider: ProviderGemini},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DefaultModelTable(tt.provider)
			assert.NotEmpty(t, table.Default)
			assert.NotEmpty(t, table.Fast)
			assert.NotEmpty(t, table.Thinking)
		})
	}
}
