package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Fatal reports whether the error must abort the run.
func (e *AppError) Fatal() bool { return IsFatalCode(e.Code) }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// InvalidInput creates a new AppError for an invalid argument or config value.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// InvalidTranscript creates a new AppError for an unreadable or malformed transcript.
func InvalidTranscript(path string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvalidTranscript, Message: fmt.Sprintf("Cannot parse transcript %s", path),
		Details: map[string]any{"path": path}, Cause: cause,
	}
}

// InvalidNumeral creates a new AppError for a token the numeral conversion rejects.
func InvalidNumeral(token string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidNumeral, Message: fmt.Sprintf("Cannot spell out numeral %q", token),
		Details: map[string]any{"token": token},
	}
}

// UnknownSymbol creates a new AppError for a character missing from the alphabet.
func UnknownSymbol(symbol string) *AppError {
	return &AppError{
		Code: ErrCodeUnknownSymbol,
		Message: fmt.Sprintf("Your transcripts contain characters (e.g. '%s') which do not occur in the alphabet. "+
			"Collect the characters of your train/dev/test transcripts and regenerate the alphabet file.", symbol),
		Details: map[string]any{"symbol": symbol},
	}
}

// ExtractionFailed creates a new AppError for a failed external audio tool invocation.
func ExtractionFailed(tool string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeExtractionFailed, Message: fmt.Sprintf("%s invocation failed", tool),
		Retryable: true, Details: map[string]any{"tool": tool}, Cause: cause,
	}
}

// Timeout creates a new AppError for an operation that exceeded its time budget.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: fmt.Sprintf("%s took too long", operation),
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// InvariantViolated creates a new AppError for broken import bookkeeping.
func InvariantViolated(what string, want, got int64) *AppError {
	return &AppError{
		Code: ErrCodeInvariantViolated, Message: fmt.Sprintf("%s: expected %d, got %d", what, want, got),
		Details: map[string]any{"expected": want, "actual": got},
	}
}

// Internal creates a new AppError for an internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
