package ports

import (
	"context"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// GitService exposes the repository operations the pipeline needs.
type GitService interface {
	// GetDiffInfo walks the repository and returns the normalized diff
	// view: staged changes when any exist, unstaged otherwise. It fails
	// with errors.ErrNoChanges when neither pass records a file.
	GetDiffInfo(ctx context.Context) (*models.DiffInfo, error)

	// HasStagedChanges reports whether the index differs from HEAD, or
	// is non-empty in a repository without commits.
	HasStagedChanges(ctx context.Context) (bool, error)

	// GetStagedFiles lists the staged paths for display.
	GetStagedFiles(ctx context.Context) ([]string, error)

	// CreateCommit records a commit with the given message using the
	// repository's configured identity.
	CreateCommit(ctx context.Context, message string) error
}
