// Package generation turns a diff analysis into a validated
// conventional commit message. The orchestrator builds the prompt once,
// asks the model for a candidate, extracts and post-processes it, and
// regenerates with a corrective hint when validation or the type hint
// disagrees, up to a fixed retry ceiling.
package generation

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ports"
	"github.com/jamiehdev/commit-wizard/internal/prompt"
)

// defaultMaxRetries bounds regeneration when the caller does not say.
const defaultMaxRetries = 3

// Generator drives the generate-validate loop against a model client.
type Generator struct {
	client       ports.ModelClient
	defaultModel string
}

var _ ports.CommitGenerator = (*Generator)(nil)

// NewGenerator returns a Generator that sends requests through client,
// falling back to defaultModel when the options name none.
func NewGenerator(client ports.ModelClient, defaultModel string) *Generator {
	return &Generator{client: client, defaultModel: defaultModel}
}

// Generate runs the bounded generate-validate loop and returns the first
// message that passes the grammar, or the last failure once the retry
// budget runs out. A message that is valid but misses the type hint is
// accepted after the final retry rather than discarded.
func (g *Generator) Generate(ctx context.Context, diff *models.DiffInfo, intelligence *models.CommitIntelligence, opts models.GenerationOptions) (*models.GenerationResult, error) {
	log := logger.FromContext(ctx)

	model := opts.Model
	if model == "" {
		model = g.defaultModel
	}
	maxRetries := opts.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	basePrompt := prompt.Build(diff, intelligence)
	systemPrompt := prompt.SystemPrompt(intelligence)
	log.Debug("prompt built", "model", model, "chars", len(basePrompt))

	if opts.Progress != nil {
		opts.Progress(models.ProgressEvent{Stage: models.StageGenerating})
	}

	retryCount := 0
	for {
		userPrompt := basePrompt
		if retryCount > 0 {
			userPrompt += retryHint(intelligence)
			if opts.Progress != nil {
				opts.Progress(models.ProgressEvent{Stage: models.StageRetrying, Attempt: retryCount})
			}
		}

		messages := []models.ChatMessage{
			{Role: models.RoleSystem, Content: systemPrompt},
			{Role: models.RoleUser, Content: userPrompt},
		}

		raw, err := g.client.Complete(ctx, model, messages)
		if err != nil {
			return nil, err
		}
		log.Debug("model responded", "attempt", retryCount+1, "chars", len(raw))

		candidate := PostProcessCommitMessage(ExtractCommitMessage(raw))
		log.Debug("candidate extracted", "message", candidate)

		if err := ValidateCommitMessage(candidate); err != nil {
			if fixed, fixErr := FixCommitFormat(candidate); fixErr == nil && ValidateCommitMessage(fixed) == nil {
				log.Debug("auto-fixed commit format", "original", candidate, "fixed", fixed)
				return &models.GenerationResult{Message: fixed, Model: model, Attempts: retryCount + 1}, nil
			}

			retryable := errors.Is(err, errDescriptionTooLong) || errors.Is(err, errInvalidScope)
			if retryable && retryCount < maxRetries {
				retryCount++
				log.Debug("validation failed, regenerating", "reason", err, "attempt", retryCount, "max", maxRetries)
				continue
			}
			if retryable {
				return nil, domainErrors.ErrGenerationFailed.WithError(err)
			}
			return nil, domainErrors.ErrInvalidFormat.WithError(err)
		}

		if parts, ok := ParseFirstLine(candidate); ok && parts.Type != intelligence.CommitTypeHint && retryCount < maxRetries {
			retryCount++
			log.Debug("type differs from hint, regenerating",
				"generated", parts.Type, "hint", intelligence.CommitTypeHint, "attempt", retryCount)
			continue
		}

		return &models.GenerationResult{Message: candidate, Model: model, Attempts: retryCount + 1}, nil
	}
}

// retryHint restates the hard limits the previous response missed.
func retryHint(intelligence *models.CommitIntelligence) string {
	scopeLine := "do not include a scope"
	if intelligence.ScopeHint != "" {
		scopeLine = "must use scope: " + intelligence.ScopeHint
	}
	return fmt.Sprintf("\n\nimportant: the description must be under 72 characters. be concise.\nmust use type: %s\n%s",
		intelligence.CommitTypeHint, scopeLine)
}
