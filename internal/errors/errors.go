package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeGit           ErrorType = "GIT"
	TypeAI            ErrorType = "AI"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if status, ok := e.Context["status"].(int); ok && status != 0 {
			msg += fmt.Sprintf(" [HTTP %d]", status)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrNotGitRepo = NewAppError(TypeGit, "Not a git repository", nil).
			WithSuggestion("Run commit-wizard inside a git repository, or initialize one: git init")

	ErrNoChanges = NewAppError(TypeGit, "No changes detected", nil).
			WithSuggestion("Stage your changes first with: git add <files>")

	ErrGetDiff = NewAppError(TypeGit, "Failed to read diff", nil).
			WithSuggestion("Check repository state: git status")

	ErrCreateCommit = NewAppError(TypeGit, "Failed to create commit", nil).
			WithSuggestion("Ensure git user is configured:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")

	ErrGitUserNotConfigured = NewAppError(TypeGit, "git user.name or user.email not configured", nil).
				WithSuggestion("Set your git identity:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")
)

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "OpenRouter API key is missing", nil).
				WithSuggestion("Set the OPENROUTER_API_KEY environment variable or add it to a .env file")

	ErrGeminiKeyMissing = NewAppError(TypeConfiguration, "Gemini API key is missing", nil).
				WithSuggestion("Run: commit-wizard config set-gemini-key <key>, or set GEMINI_API_KEY")

	ErrProviderNotSupported = NewAppError(TypeConfiguration, "AI provider not supported", nil).
				WithSuggestion("Supported providers: openrouter, gemini")
)

// AI errors
var (
	ErrInvalidModel = NewAppError(TypeAI, "Model not recognized by the API", nil).
			WithSuggestion("List valid models with: commit-wizard models")

	ErrEmptyResponse = NewAppError(TypeAI, "Model returned no choices", nil).
				WithSuggestion("This is usually transient, try again")

	ErrAPIRequest = NewAppError(TypeAI, "API request failed", nil).
			WithSuggestion("Check your network connection and API status")

	ErrQuotaExceeded = NewAppError(TypeAI, "API quota exceeded or rate limited", nil).
				WithSuggestion("Wait a few minutes and try again, or check your plan limits")

	ErrInvalidFormat = NewAppError(TypeAI, "Generated message failed validation", nil).
				WithSuggestion("Try again; persistent failures may need a different model: commit-wizard models")

	ErrGenerationFailed = NewAppError(TypeAI, "Failed to generate a valid commit message", nil).
				WithSuggestion("Try again or switch models: commit-wizard models --set <model>")
)

// Internal errors
var (
	ErrModelCatalog = NewAppError(TypeInternal, "Failed to load model catalog", nil).
		WithSuggestion("Clear the cache directory: rm -rf ~/.commit-wizard/cache")
)
