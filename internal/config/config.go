package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

type (
	Config struct {
		ActiveProvider string `json:"active_provider"`
		GeminiAPIKey   string `json:"gemini_api_key,omitempty"`
		Language       string `json:"language"`
		UseEmoji       bool   `json:"use_emoji"`
		MaxFileSizeKB  int    `json:"max_file_size_kb"`
		MaxFiles       int    `json:"max_files"`
		// DefaultCommitType is used when pattern detection maps to no
		// commit type at all.
		DefaultCommitType string `json:"default_commit_type"`
		PathFile          string `json:"path_file"`
		Models            ModelTable `json:"models"`
	}

	// ModelTable routes generation to a model by diff complexity.
	ModelTable struct {
		Default   string       `json:"default"`
		Fast      string       `json:"fast"`
		Thinking  string       `json:"thinking"`
		Available []ModelEntry `json:"available,omitempty"`
	}

	ModelEntry struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
)

const (
	defaultLang          = "en"
	defaultUseEmoji      = true
	defaultMaxFileSizeKB = 100
	defaultMaxFiles      = 10
	defaultCommitType    = "feat"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".commit-wizard")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is invalid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		ActiveProvider:    string(ProviderOpenRouter),
		Language:          defaultLang,
		UseEmoji:          defaultUseEmoji,
		MaxFileSizeKB:     defaultMaxFileSizeKB,
		MaxFiles:          defaultMaxFiles,
		DefaultCommitType: defaultCommitType,
		PathFile:          path,
		Models:            DefaultModelTable(ProviderOpenRouter),
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("error writing default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is invalid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language must not be empty")
	}
	if config.MaxFileSizeKB <= 0 {
		return errors.New("max_file_size_kb must be greater than 0")
	}
	if config.MaxFiles <= 0 {
		return errors.New("max_files must be greater than 0")
	}
	if config.DefaultCommitType != "" && !models.IsValidCommitType(config.DefaultCommitType) {
		return fmt.Errorf("default_commit_type %q is not a conventional commit type", config.DefaultCommitType)
	}

	if config.ActiveProvider != "" {
		supported := false
		for _, p := range SupportedProviders() {
			if string(p) == config.ActiveProvider {
				supported = true
				break
			}
		}
		if !supported {
			return fmt.Errorf("unsupported provider: %s", config.ActiveProvider)
		}
	}
	return nil
}
