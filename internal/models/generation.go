package models

// Chat roles understood by every provider.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one turn of a chat completion request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationOptions tunes one orchestrated generation request.
type GenerationOptions struct {
	// Model overrides complexity-based routing when non-empty.
	Model string
	// MaxRetries bounds regeneration after validation failures.
	MaxRetries int
	// Progress, when non-nil, receives stage events as the request
	// advances. Calls happen on the calling goroutine.
	Progress func(ProgressEvent)
}

// GenerationResult is the accepted outcome of a generation request.
type GenerationResult struct {
	Message  string
	Model    string
	Attempts int
}

// ModelInfo describes one entry of the provider's model catalog.
type ModelInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ContextLength int    `json:"context_length,omitempty"`
}

// ProgressStage identifies a phase of the suggest flow for UI updates.
type ProgressStage string

const (
	StageAnalyzing  ProgressStage = "analyzing"
	StageGenerating ProgressStage = "generating"
	StageRetrying   ProgressStage = "retrying"
)

// ProgressEvent is pushed to the caller-supplied callback while the
// pipeline runs, so the CLI can update its spinner without the core
// knowing about terminals.
type ProgressEvent struct {
	Stage   ProgressStage
	Attempt int
}
