package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/commands/completion"
	"github.com/jamiehdev/commit-wizard/internal/config"
	"github.com/jamiehdev/commit-wizard/internal/i18n"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ui"
	"github.com/urfave/cli/v3"
)

type ConfigCommandFactory struct{}

func NewConfigCommandFactory() *ConfigCommandFactory {
	return &ConfigCommandFactory{}
}

func (c *ConfigCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "config",
		Usage:         t.GetMessage("config_command_usage", 0, nil),
		ShellComplete: completion.DefaultFlagComplete,
		Commands: []*cli.Command{
			c.newShowCommand(t, cfg),
			c.newSetLangCommand(t, cfg),
			c.newSetProviderCommand(t, cfg),
			c.newSetGeminiKeyCommand(t, cfg),
			c.newSetDefaultTypeCommand(t, cfg),
		},
	}
}

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			ui.SetEmojiEnabled(cfg.UseEmoji)
			ui.PrintSectionBanner(t.GetMessage("current_config", 0, nil))

			provider := cfg.ActiveProvider
			if provider == "" {
				provider = string(config.ProviderOpenRouter)
			}

			ui.PrintKeyValue(t.GetMessage("config_language_label", 0, nil), cfg.Language)
			ui.PrintKeyValue(t.GetMessage("config_provider_label", 0, nil), provider)
			ui.PrintKeyValue(t.GetMessage("config_max_size_label", 0, nil), strconv.Itoa(cfg.MaxFileSizeKB))
			ui.PrintKeyValue(t.GetMessage("config_max_files_label", 0, nil), strconv.Itoa(cfg.MaxFiles))
			if cfg.DefaultCommitType != "" {
				ui.PrintKeyValue(t.GetMessage("config_default_type_label", 0, nil), cfg.DefaultCommitType)
			}
			ui.PrintKeyValue(t.GetMessage("config_models_label", 0, nil),
				fmt.Sprintf("%s / %s / %s", cfg.Models.Default, cfg.Models.Fast, cfg.Models.Thinking))
			fmt.Println()
			return nil
		},
	}
}

func (c *ConfigCommandFactory) newSetLangCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-lang",
		Usage:     t.GetMessage("config_set_lang_usage", 0, nil),
		ArgsUsage: "<en|es>",
		Action: func(ctx context.Context, command *cli.Command) error {
			lang := strings.ToLower(command.Args().First())
			if lang == "" {
				return missingValue(t, "set-lang", "es")
			}
			if !isValidLanguage(lang) {
				return reportError(t, "invalid_language", map[string]interface{}{"Lang": lang})
			}

			cfg.Language = lang
			// the confirmation should already come out in the new language
			_ = t.SetLanguage(lang)

			return saveAndConfirm(cfg, t, "language_updated", map[string]interface{}{"Lang": lang})
		},
	}
}

func (c *ConfigCommandFactory) newSetProviderCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-provider",
		Usage:     t.GetMessage("config_set_provider_usage", 0, nil),
		ArgsUsage: "<openrouter|gemini>",
		Action: func(ctx context.Context, command *cli.Command) error {
			provider := strings.ToLower(command.Args().First())
			if provider == "" {
				return missingValue(t, "set-provider", "gemini")
			}
			if !isSupportedProvider(provider) {
				return reportError(t, "invalid_provider", map[string]interface{}{"Provider": provider})
			}

			// switching providers invalidates the routing table, the model
			// ids are provider-specific
			if provider != cfg.ActiveProvider {
				cfg.ActiveProvider = provider
				cfg.Models = config.DefaultModelTable(config.Provider(provider))
			}

			return saveAndConfirm(cfg, t, "provider_updated", map[string]interface{}{"Provider": provider})
		},
	}
}

func (c *ConfigCommandFactory) newSetGeminiKeyCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-gemini-key",
		Usage:     t.GetMessage("config_set_gemini_key_usage", 0, nil),
		ArgsUsage: "<api-key>",
		Action: func(ctx context.Context, command *cli.Command) error {
			key := command.Args().First()
			if key == "" {
				return missingValue(t, "set-gemini-key", "AIza...")
			}

			cfg.GeminiAPIKey = key
			return saveAndConfirm(cfg, t, "gemini_key_updated", nil)
		},
	}
}

func (c *ConfigCommandFactory) newSetDefaultTypeCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "set-default-type",
		Usage:     t.GetMessage("config_set_default_type_usage", 0, nil),
		ArgsUsage: "<type>",
		Action: func(ctx context.Context, command *cli.Command) error {
			commitType := strings.ToLower(command.Args().First())
			if commitType == "" {
				return missingValue(t, "set-default-type", "chore")
			}
			if !models.IsValidCommitType(commitType) {
				return reportError(t, "invalid_commit_type", map[string]interface{}{"Type": commitType})
			}

			cfg.DefaultCommitType = commitType
			return saveAndConfirm(cfg, t, "default_type_updated", map[string]interface{}{"Type": commitType})
		},
	}
}

func missingValue(t *i18n.Translations, command, example string) error {
	msg := t.GetMessage("config_missing_value", 0, map[string]interface{}{
		"Command": command,
		"Example": example,
	})
	ui.PrintError(os.Stdout, msg)
	return fmt.Errorf("%s", msg)
}

func reportError(t *i18n.Translations, messageID string, data map[string]interface{}) error {
	msg := t.GetMessage(messageID, 0, data)
	ui.PrintError(os.Stdout, msg)
	return fmt.Errorf("%s", msg)
}

func saveAndConfirm(cfg *config.Config, t *i18n.Translations, messageID string, data map[string]interface{}) error {
	if err := config.SaveConfig(cfg); err != nil {
		ui.HandleAppError(err, t)
		return err
	}
	ui.PrintSuccess(os.Stdout, t.GetMessage(messageID, 0, data))
	return nil
}

func isValidLanguage(lang string) bool {
	validLangs := map[string]bool{
		"en": true,
		"es": true,
	}
	return validLangs[lang]
}

func isSupportedProvider(provider string) bool {
	for _, p := range config.SupportedProviders() {
		if string(p) == provider {
			return true
		}
	}
	return false
}
