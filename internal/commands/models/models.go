package models

import (
	"context"
	"fmt"
	"os"

	"github.com/jamiehdev/commit-wizard/internal/commands/completion"
	"github.com/jamiehdev/commit-wizard/internal/config"
	"github.com/jamiehdev/commit-wizard/internal/i18n"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ui"
	"github.com/urfave/cli/v3"
)

// Catalog is the slice of the model catalog this command drives.
type Catalog interface {
	LoadModels(ctx context.Context) ([]models.ModelInfo, error)
	Refresh(ctx context.Context) ([]models.ModelInfo, error)
	SavePreference(model string) error
}

// CatalogBuilder constructs the catalog on demand. The provider client
// behind it is only needed when this command actually runs.
type CatalogBuilder func(ctx context.Context) (Catalog, error)

type ModelsCommandFactory struct {
	buildCatalog CatalogBuilder
}

func NewModelsCommandFactory(build CatalogBuilder) *ModelsCommandFactory {
	return &ModelsCommandFactory{buildCatalog: build}
}

func (f *ModelsCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "models",
		Usage:         t.GetMessage("models_command_usage", 0, nil),
		Flags:         f.createFlags(t),
		ShellComplete: completion.DefaultFlagComplete,
		Action:        f.createAction(cfg, t),
	}
}

func (f *ModelsCommandFactory) createFlags(t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "set",
			Usage: t.GetMessage("models_set_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "refresh",
			Aliases: []string{"r"},
			Usage:   t.GetMessage("models_refresh_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: t.GetMessage("verbose_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: t.GetMessage("debug_flag_usage", 0, nil),
		},
	}
}

func (f *ModelsCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		logger.Initialize(command.Bool("debug"), command.Bool("verbose"))
		log := logger.FromContext(ctx)
		ui.SetEmojiEnabled(cfg.UseEmoji)

		cat, err := f.buildCatalog(ctx)
		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		if model := command.String("set"); model != "" {
			if err := cat.SavePreference(model); err != nil {
				ui.HandleAppError(err, t)
				return err
			}
			ui.PrintSuccess(os.Stdout, t.GetMessage("models_preference_saved", 0, map[string]interface{}{"Model": model}))
			return nil
		}

		spinner := ui.NewSmartSpinner(t.GetMessage("loading_models", 0, nil))
		spinner.Start()

		var listing []models.ModelInfo
		if command.Bool("refresh") {
			listing, err = cat.Refresh(ctx)
		} else {
			listing, err = cat.LoadModels(ctx)
		}
		spinner.Stop()

		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		log.Debug("model catalog loaded", "models", len(listing), "refreshed", command.Bool("refresh"))

		ui.PrintInfo(t.GetMessage("models_available", len(listing), map[string]interface{}{"Count": len(listing)}))
		fmt.Println()
		printListing(listing, cfg.Models.Default, t)
		fmt.Println()
		return nil
	}
}

func printListing(listing []models.ModelInfo, defaultModel string, t *i18n.Translations) {
	for _, m := range listing {
		marker := ""
		if m.ID == defaultModel {
			marker = " " + ui.Accent.Sprint(t.GetMessage("models_default_marker", 0, nil))
		}
		name := ""
		if m.Name != "" && m.Name != m.ID {
			name = "  " + ui.Dim.Sprint(m.Name)
		}
		fmt.Printf("   %s%s%s\n", m.ID, name, marker)
	}
}
