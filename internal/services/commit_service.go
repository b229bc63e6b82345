// Package services composes the pipeline behind the commands: read the
// diff, analyse it, route to a model, generate a message, commit it.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jamiehdev/commit-wizard/internal/analysis"
	"github.com/jamiehdev/commit-wizard/internal/config"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ports"
)

// CommitService wires the repository reader, the analysis stage and the
// generation orchestrator into one suggest flow.
type CommitService struct {
	git       ports.GitService
	generator ports.CommitGenerator
	cfg       *config.Config
}

func NewCommitService(git ports.GitService, generator ports.CommitGenerator, cfg *config.Config) *CommitService {
	return &CommitService{
		git:       git,
		generator: generator,
		cfg:       cfg,
	}
}

// Suggestion bundles the generated message with the analysis context
// the CLI shows alongside it.
type Suggestion struct {
	Message      string
	Model        string
	Attempts     int
	StagedFiles  []string
	Intelligence *models.CommitIntelligence
	Diff         *models.DiffInfo
}

// Suggest runs the pipeline end to end: staged file listing, diff
// analysis, complexity-based model routing when the options name no
// model, then the bounded generation loop.
func (s *CommitService) Suggest(ctx context.Context, opts models.GenerationOptions) (*Suggestion, error) {
	log := logger.FromContext(ctx)

	staged, err := s.git.GetStagedFiles(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Progress != nil {
		opts.Progress(models.ProgressEvent{Stage: models.StageAnalyzing})
	}

	diff, err := s.git.GetDiffInfo(ctx)
	if err != nil {
		return nil, err
	}

	intelligence := analysis.AnalyseCommitIntelligence(diff, s.cfg.DefaultCommitType)
	log.Debug("diff analysed",
		"files", len(diff.Files),
		"complexity", intelligence.ComplexityScore,
		"type", intelligence.CommitTypeHint,
		"scope", intelligence.ScopeHint)

	if opts.Model == "" {
		selector := NewModelSelector(s.cfg.Models)
		opts.Model = selector.SelectForComplexity(intelligence.ComplexityScore)
		log.Debug("model routing",
			"complexity", intelligence.ComplexityScore,
			"model", opts.Model,
			"rationale", selector.Rationale(opts.Model))
	}

	result, err := s.generator.Generate(ctx, diff, intelligence, opts)
	if err != nil {
		return nil, err
	}

	return &Suggestion{
		Message:      result.Message,
		Model:        result.Model,
		Attempts:     result.Attempts,
		StagedFiles:  staged,
		Intelligence: intelligence,
		Diff:         diff,
	}, nil
}

// Commit records the accepted message with the repository's identity.
func (s *CommitService) Commit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return errors.New("refusing to commit an empty message")
	}
	return s.git.CreateCommit(ctx, message)
}
