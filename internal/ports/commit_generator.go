package ports

import (
	"context"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// CommitGenerator drives the model call and the bounded validation-retry
// loop, returning a message that satisfies the conventional commit
// grammar or a typed failure.
type CommitGenerator interface {
	Generate(ctx context.Context, diff *models.DiffInfo, intelligence *models.CommitIntelligence, opts models.GenerationOptions) (*models.GenerationResult, error)
}
