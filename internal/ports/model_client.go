package ports

import (
	"context"

	"github.com/jamiehdev/commit-wizard/internal/models"
)

// ModelClient speaks to one text-generation backend. Implementations own
// their transport-level retry policy; callers own validation retries.
type ModelClient interface {
	// Complete sends a chat completion request and returns the raw text
	// of the first choice.
	Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error)
}
