package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeVCS     ErrorType = "VCS"
	TypeTracker ErrorType = "TRACKER"
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
		if body, ok := e.Context["body"].(string); ok && body != "" {
			msg += fmt.Sprintf(" - %s", body)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches two AppErrors sharing type and message, so wrapped sentinels
// built with WithError/WithContext still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
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

// GitHub errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token with 'repo' scope at: https://github.com/settings/tokens")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token has insufficient permissions", nil).
					WithSuggestion("Token needs the 'repo' scope to search private repositories")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes and run the import again")

	ErrInvalidSearchQuery = NewAppError(TypeVCS, "GitHub rejected the search query", nil).
				WithSuggestion("Check that the organization, repository and label exist")

	ErrSearchIssues = NewAppError(TypeVCS, "failed to search GitHub issues", nil)
)

// Clubhouse errors
var (
	ErrClubhouseTokenInvalid = NewAppError(TypeTracker, "Clubhouse token is invalid", nil).
					WithSuggestion("Generate an API token in Clubhouse under Settings > API Tokens")

	ErrProjectNotFound = NewAppError(TypeTracker, "Clubhouse project not found", nil).
				WithSuggestion("Check the --clubhouse-project id")

	ErrCreateStory = NewAppError(TypeTracker, "failed to create Clubhouse story", nil)

	ErrTrackerUnexpectedStatus = NewAppError(TypeTracker, "unexpected response from Clubhouse", nil)

	ErrTrackerRequest = NewAppError(TypeTracker, "Clubhouse request failed", nil)
)
