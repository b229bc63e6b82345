package suggest

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jamiehdev/commit-wizard/internal/commands/completion"
	"github.com/jamiehdev/commit-wizard/internal/config"
	"github.com/jamiehdev/commit-wizard/internal/i18n"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/services"
	"github.com/jamiehdev/commit-wizard/internal/ui"
	"github.com/urfave/cli/v3"
)

// CommitPipeline is the slice of the commit service this command drives.
type CommitPipeline interface {
	Suggest(ctx context.Context, opts models.GenerationOptions) (*services.Suggestion, error)
	Commit(ctx context.Context, message string) error
}

// PipelineBuilder constructs the suggest pipeline once the repository
// flags are resolved. The repository path and analysis limits are only
// known after flag parsing, so the factory builds the service per run.
type PipelineBuilder func(ctx context.Context, repoPath string, maxFileSizeKB, maxFiles int) (CommitPipeline, error)

type SuggestCommandFactory struct {
	buildPipeline PipelineBuilder
}

func NewSuggestCommandFactory(build PipelineBuilder) *SuggestCommandFactory {
	return &SuggestCommandFactory{buildPipeline: build}
}

func (f *SuggestCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:          "suggest",
		Aliases:       []string{"s"},
		Usage:         t.GetMessage("suggest_command_usage", 0, nil),
		Description:   t.GetMessage("suggest_command_description", 0, nil),
		Flags:         f.createFlags(cfg, t),
		ShellComplete: completion.DefaultFlagComplete,
		Action:        f.createAction(cfg, t),
	}
}

func (f *SuggestCommandFactory) createFlags(cfg *config.Config, t *i18n.Translations) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "path",
			Aliases: []string{"p"},
			Value:   ".",
			Usage:   t.GetMessage("suggest_path_flag_usage", 0, nil),
		},
		&cli.IntFlag{
			Name:  "max-size",
			Value: cfg.MaxFileSizeKB,
			Usage: t.GetMessage("suggest_max_size_flag_usage", 0, nil),
		},
		&cli.IntFlag{
			Name:  "max-files",
			Value: cfg.MaxFiles,
			Usage: t.GetMessage("suggest_max_files_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   t.GetMessage("suggest_yes_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   t.GetMessage("suggest_model_flag_usage", 0, nil),
		},
		&cli.StringFlag{
			Name:    "lang",
			Aliases: []string{"l"},
			Value:   cfg.Language,
			Usage:   t.GetMessage("suggest_lang_flag_usage", 0, nil),
		},
		&cli.BoolFlag{
			Name:    "no-emoji",
			Aliases: []string{"ne"},
			Usage:   t.GetMessage("suggest_no_emoji_flag_usage", 0, nil),
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

func (f *SuggestCommandFactory) createAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		logger.Initialize(command.Bool("debug"), command.Bool("verbose"))
		log := logger.FromContext(ctx)

		repoPath := command.String("path")
		maxFileSizeKB := command.Int("max-size")
		maxFiles := command.Int("max-files")
		autoCommit := command.Bool("yes")
		model := command.String("model")
		lang := command.String("lang")

		if command.Bool("no-emoji") {
			cfg.UseEmoji = false
		}
		ui.SetEmojiEnabled(cfg.UseEmoji)

		if lang != cfg.Language {
			if err := t.SetLanguage(lang); err != nil {
				ui.PrintWarning(t.GetMessage("invalid_language", 0, map[string]interface{}{"Lang": lang}))
			} else {
				cfg.Language = lang
			}
		}

		log.Info("executing suggest command",
			"path", repoPath,
			"max_file_size_kb", maxFileSizeKB,
			"max_files", maxFiles,
			"auto_commit", autoCommit,
			"model", model)

		pipeline, err := f.buildPipeline(ctx, repoPath, maxFileSizeKB, maxFiles)
		if err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		ui.PrintSectionBanner(t.GetMessage("ui.generating_banner", 0, nil))

		spinner := ui.NewSmartSpinner(t.GetMessage("analyzing_changes", 0, nil))
		spinner.Start()

		start := time.Now()

		suggestion, err := pipeline.Suggest(ctx, models.GenerationOptions{
			Model: model,
			Progress: func(event models.ProgressEvent) {
				switch event.Stage {
				case models.StageGenerating:
					spinner.UpdateMessage(t.GetMessage("generating_message", 0, nil))
				case models.StageRetrying:
					spinner.UpdateMessage(t.GetMessage("retrying_generation", 0, map[string]interface{}{"Attempt": event.Attempt}))
				}
			},
		})

		duration := time.Since(start)

		if err != nil {
			spinner.Stop()
			log.Error("suggestion failed", "error", err, "duration_ms", duration.Milliseconds())
			ui.HandleAppError(err, t)
			return fmt.Errorf("%s", t.GetMessage("suggestion_generation_error", 0, struct{ Error error }{err}))
		}

		spinner.Stop()
		log.Info("suggestion generated",
			"model", suggestion.Model,
			"attempts", suggestion.Attempts,
			"duration_ms", duration.Milliseconds())

		showSuggestion(suggestion, duration, t)

		if !autoCommit && !ui.AskConfirmation(t.GetMessage("confirm_commit", 0, nil)) {
			ui.PrintInfo(t.GetMessage("commit_skipped_hint", 0, nil))
			fmt.Printf("\n   git commit -m %q\n\n", suggestion.Message)
			return nil
		}

		if err := pipeline.Commit(ctx, suggestion.Message); err != nil {
			ui.HandleAppError(err, t)
			return err
		}

		ui.PrintSuccess(os.Stdout, t.GetMessage("commit_created", 0, nil))
		return nil
	}
}

func showSuggestion(s *services.Suggestion, duration time.Duration, t *i18n.Translations) {
	changes := make([]ui.FileChange, 0, len(s.Diff.Files))
	for _, f := range s.Diff.Files {
		changes = append(changes, ui.FileChange{
			Path:      f.Path,
			Additions: f.AddedLines,
			Deletions: f.RemovedLines,
		})
	}
	header := t.GetMessage("staged_files_count", len(s.StagedFiles), map[string]interface{}{"Count": len(s.StagedFiles)})
	ui.PrintFileTree(changes, header)

	fmt.Println()
	ui.PrintDuration(t.GetMessage("ui.message_ready", 0, nil), duration)
	ui.PrintCommitMessage(s.Message)

	ui.PrintKeyValue(t.GetMessage("ui.label_complexity", 0, nil), fmt.Sprintf("%.1f", s.Intelligence.ComplexityScore))
	ui.PrintKeyValue(t.GetMessage("ui.label_type", 0, nil), s.Intelligence.CommitTypeHint)
	if s.Intelligence.ScopeHint != "" {
		ui.PrintKeyValue(t.GetMessage("ui.label_scope", 0, nil), s.Intelligence.ScopeHint)
	}
	ui.PrintKeyValue(t.GetMessage("ui.label_model", 0, nil), s.Model)
	ui.PrintKeyValue(t.GetMessage("ui.label_attempts", 0, nil), strconv.Itoa(s.Attempts))
}
