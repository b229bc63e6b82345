package ports

import (
	"context"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// ModelCatalog lists the models offered by the active provider and
// remembers the user's default choice.
type ModelCatalog interface {
	LoadModels(ctx context.Context) ([]models.ModelInfo, error)
	Refresh(ctx context.Context) ([]models.ModelInfo, error)
	SavePreference(model string) error
}
