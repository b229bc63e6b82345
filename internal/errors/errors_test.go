package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrGetDiff.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeGit {
		t.Errorf("Expected type %s, got %s", TypeGit, appErr.Type)
	}

	// the sentinel must remain untouched
	if ErrGetDiff.Err != nil {
		t.Errorf("Expected sentinel to keep nil Err, got %v", ErrGetDiff.Err)
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrAPIRequest.WithContext("status", 503).WithContext("model", "deepseek/deepseek-chat")

	if appErr.Context["status"] != 503 {
		t.Errorf("Expected status context 503, got %v", appErr.Context["status"])
	}

	if appErr.Context["model"] != "deepseek/deepseek-chat" {
		t.Errorf("Expected model context 'deepseek/deepseek-chat', got %v", appErr.Context["model"])
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "simple error without underlying error",
			err:  ErrNoChanges,
			contains: []string{
				"GIT",
				"No changes detected",
			},
		},
		{
			name: "error with underlying error",
			err:  ErrInvalidFormat.WithError(errors.New("description exceeds 72 characters")),
			contains: []string{
				"AI",
				"failed validation",
				"description exceeds 72 characters",
			},
		},
		{
			name: "error with http status context",
			err: ErrAPIRequest.WithError(errors.New("server error")).
				WithContext("status", 502),
			contains: []string{
				"AI",
				"API request failed",
				"server error",
				"HTTP 502",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, should contain %q", msg, want)
				}
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	baseErr := errors.New("boom")
	appErr := ErrGenerationFailed.WithError(baseErr)

	if !errors.Is(appErr, baseErr) {
		t.Error("errors.Is should find the wrapped error")
	}

	var target *AppError
	if !errors.As(appErr, &target) {
		t.Error("errors.As should extract *AppError")
	}
	if target.Type != TypeAI {
		t.Errorf("Expected type %s, got %s", TypeAI, target.Type)
	}
}

func TestAppError_WrappedSentinelMatch(t *testing.T) {
	// call sites wrap sentinels with fmt.Errorf("%w: %v", ...)
	wrapped := ErrInvalidModel.WithError(errors.New("no endpoints found"))

	if !errors.Is(wrapped, ErrInvalidModel.Err) && wrapped.Message != ErrInvalidModel.Message {
		t.Error("wrapped error should preserve the sentinel message")
	}

	if wrapped.Suggestion == "" {
		t.Error("wrapped error should keep the sentinel suggestion")
	}
}
