package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommitMessageAccepts(t *testing.T) {
	messages := []string{
		"feat: add user session store",
		"fix(api): handle nil pointer in payload decoding",
		"feat(api)!: drop the legacy v1 endpoints",
		"refactor(core/analysis): split the classifier table",
		"feat(ai,napi): improve validation",
		"docs: describe the retry backoff policy",
		"fix: guard against empty diffs\n\n- Return early when no files changed",
		"feat: tidy things and stuff in the parser",
	}

	for _, msg := range messages {
		assert.NoError(t, ValidateCommitMessage(msg), "message: %s", msg)
	}
}

func TestValidateCommitMessageRejects(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr string
	}{
		{"empty message", "", "commit message is empty"},
		{"no header separator", "add a new feature", "invalid format"},
		{"unknown type", "feature: add login", "invalid type"},
		{"unknown type with scope", "feature(api): add login", "invalid type"},
		{"empty scope", "feat(): add login", "invalid scope"},
		{"scope with spaces", "feat(user auth): add login", "invalid scope"},
		{"scope with bang", "feat(api!): add login", "invalid scope"},
		{"uppercase start", "feat: Add login", "lowercase"},
		{"trailing period", "feat: add login.", "period"},
		{"missing space after colon", "feat:add login", "invalid format"},
		{"empty description", "feat: ", "description cannot be empty"},
		{"past tense", "feat: added login flow", "imperative"},
		{"gerund", "fix: fixing the session timeout", "imperative"},
		{"too vague", "chore: update various things and stuff", "too vague"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCommitMessage(tt.message)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCommitMessageDescriptionLength(t *testing.T) {
	exact := "feat: " + strings.Repeat("x", maxDescriptionLen)
	assert.NoError(t, ValidateCommitMessage(exact))

	over := "feat: " + strings.Repeat("x", maxDescriptionLen+1)
	err := ValidateCommitMessage(over)
	require.Error(t, err)
	assert.ErrorIs(t, err, errDescriptionTooLong)
}

func TestValidateCommitMessageScopeError(t *testing.T) {
	err := ValidateCommitMessage("feat(user auth): add login")
	assert.ErrorIs(t, err, errInvalidScope)
}

func TestValidateCommitMessageScopeCharset(t *testing.T) {
	valid := []string{
		"feat(api-v2): add cursor pagination",
		"fix(core_utils): normalise path separators",
		"chore(pkg/sub.mod): bump patch version",
	}
	for _, msg := range valid {
		assert.NoError(t, ValidateCommitMessage(msg), "message: %s", msg)
	}
}

func TestParseFirstLineRoundTrip(t *testing.T) {
	tests := []struct {
		message string
		want    CommitParts
	}{
		{"feat: add user session store", CommitParts{Type: "feat", Description: "add user session store"}},
		{"fix(api): handle nil pointer", CommitParts{Type: "fix", Scope: "api", Description: "handle nil pointer"}},
		{"feat(api)!: drop the v1 routes", CommitParts{Type: "feat", Scope: "api", Description: "drop the v1 routes", Breaking: true}},
		{"refactor: split the walker\n\n- Move budget logic out", CommitParts{Type: "refactor", Description: "split the walker"}},
	}

	for _, tt := range tests {
		parts, ok := ParseFirstLine(tt.message)
		require.True(t, ok, "message: %s", tt.message)
		assert.Equal(t, tt.want, parts)

		rebuilt := parts.Type
		if parts.Scope != "" {
			rebuilt += "(" + parts.Scope + ")"
		}
		if parts.Breaking {
			rebuilt += "!"
		}
		rebuilt += ": " + parts.Description

		firstLine, _, _ := strings.Cut(tt.message, "\n")
		assert.Equal(t, firstLine, rebuilt)
	}
}

func TestParseFirstLineRejectsNonConventional(t *testing.T) {
	for _, msg := range []string{"update the readme", "feature: add login", ""} {
		_, ok := ParseFirstLine(msg)
		assert.False(t, ok, "message: %s", msg)
	}
}
