package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
)

func TestFirstCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("feat: add "), genai.Text("session store")},
				},
			},
		},
	}

	got, err := firstCandidateText(resp)

	require.NoError(t, err)
	assert.Equal(t, "feat: add session store", got)
}

func TestFirstCandidateTextEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"nil content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"no text parts", &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := firstCandidateText(tt.resp)
			assert.ErrorIs(t, err, domainErrors.ErrEmptyResponse)
		})
	}
}
