package services

import "github.com/jamiehdev/commit-wizard/internal/config"

// complexityRoutingThreshold splits diffs between the fast and the
// thinking model when the user names no model explicitly.
const complexityRoutingThreshold = 1.5

// ModelSelector routes a generation request to a model from the
// configured table by diff complexity.
type ModelSelector struct {
	table config.ModelTable
}

func NewModelSelector(table config.ModelTable) *ModelSelector {
	return &ModelSelector{table: table}
}

// SelectForComplexity sends sub-threshold diffs to the fast model and
// the rest to the thinking model. An unconfigured route falls back to
// the default model.
func (m *ModelSelector) SelectForComplexity(complexity float64) string {
	model := m.table.Fast
	if complexity >= complexityRoutingThreshold {
		model = m.table.Thinking
	}
	if model == "" {
		model = m.table.Default
	}
	return model
}

// Rationale explains a route for debug logging.
func (m *ModelSelector) Rationale(model string) string {
	switch model {
	case m.table.Fast:
		return "simple diff routed to the fast model"
	case m.table.Thinking:
		return "complex diff routed to the thinking model"
	default:
		return "route not configured, using the default model"
	}
}
