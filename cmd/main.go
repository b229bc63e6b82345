package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jamiehdev/commit-wizard/internal/catalog"
	"github.com/jamiehdev/commit-wizard/internal/commands/completion"
	configcmd "github.com/jamiehdev/commit-wizard/internal/commands/config"
	modelscmd "github.com/jamiehdev/commit-wizard/internal/commands/models"
	"github.com/jamiehdev/commit-wizard/internal/commands/registry"
	"github.com/jamiehdev/commit-wizard/internal/commands/suggest"
	cfg "github.com/jamiehdev/commit-wizard/internal/config"
	"github.com/jamiehdev/commit-wizard/internal/generation"
	"github.com/jamiehdev/commit-wizard/internal/git"
	"github.com/jamiehdev/commit-wizard/internal/i18n"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/providers"
	"github.com/jamiehdev/commit-wizard/internal/services"
	"github.com/jamiehdev/commit-wizard/internal/version"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("error starting the cli: %v", err)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func initializeApp() (*cli.Command, error) {
	// API keys may live in a local .env; a missing file is fine.
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("could not resolve the user home directory: %w", err)
	}

	cfgApp, err := cfg.LoadConfig(homeDir)
	if err != nil {
		return nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, err
	}

	// Persist defaults filled in during load so the file is complete
	// from the first run on.
	if err := cfg.SaveConfig(cfgApp); err != nil {
		return nil, err
	}

	// Warnings only until a command raises the level from its flags.
	logger.Initialize(false, false)

	buildPipeline := func(ctx context.Context, repoPath string, maxFileSizeKB, maxFiles int) (suggest.CommitPipeline, error) {
		client, err := providers.NewModelClient(ctx, cfgApp)
		if err != nil {
			return nil, err
		}
		repo := git.NewService(repoPath, maxFileSizeKB, maxFiles)
		generator := generation.NewGenerator(client, cfgApp.Models.Default)
		return services.NewCommitService(repo, generator, cfgApp), nil
	}

	buildCatalog := func(ctx context.Context) (modelscmd.Catalog, error) {
		lister, err := providers.NewModelLister(cfgApp)
		if err != nil {
			return nil, err
		}
		return catalog.NewCatalog(lister, cfgApp)
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)

	if err := registerCommand.Register("suggest", suggest.NewSuggestCommandFactory(buildPipeline)); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("config", configcmd.NewConfigCommandFactory()); err != nil {
		return nil, err
	}

	if err := registerCommand.Register("models", modelscmd.NewModelsCommandFactory(buildCatalog)); err != nil {
		return nil, err
	}

	commands := registerCommand.CreateCommands()
	commands = append(commands, completion.NewCompletionCommand(translations))

	helpCommand := &cli.Command{
		Name:    "help",
		Aliases: []string{"h"},
		Usage:   translations.GetMessage("help_command_usage", 0, nil),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
	}
	commands = append(commands, helpCommand)

	return &cli.Command{
		Name:                  "commit-wizard",
		Usage:                 translations.GetMessage("app_usage", 0, nil),
		Version:               version.Version,
		Description:           translations.GetMessage("app_description", 0, nil),
		Commands:              commands,
		EnableShellCompletion: true,
	}, nil
}
