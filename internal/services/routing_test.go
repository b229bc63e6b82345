package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jamiehdev/commit-wizard/internal/config"
)

func routingTable() config.ModelTable {
	return config.ModelTable{
		Default:  "openrouter/auto",
		Fast:     "fast/model",
		Thinking: "thinking/model",
	}
}

func TestSelectForComplexity(t *testing.T) {
	tests := []struct {
		name       string
		complexity float64
		want       string
	}{
		{"trivial diff", 0.3, "fast/model"},
		{"just under the threshold", 1.49, "fast/model"},
		{"at the threshold", 1.5, "thinking/model"},
		{"complex diff", 4.2, "thinking/model"},
	}

	selector := NewModelSelector(routingTable())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selector.SelectForComplexity(tt.complexity))
		})
	}
}

func TestSelectForComplexityFallsBackToDefault(t *testing.T) {
	selector := NewModelSelector(config.ModelTable{Default: "openrouter/auto"})

	assert.Equal(t, "openrouter/auto", selector.SelectForComplexity(0.5))
	assert.Equal(t, "openrouter/auto", selector.SelectForComplexity(3.0))
}

func TestRationale(t *testing.T) {
	selector := NewModelSelector(routingTable())

	assert.Contains(t, selector.Rationale("fast/model"), "fast model")
	assert.Contains(t, selector.Rationale("thinking/model"), "thinking model")
	assert.Contains(t, selector.Rationale("openrouter/auto"), "default model")
}
