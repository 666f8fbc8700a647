package util

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailRegistered      = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCourseNotFound       = errors.New("course not found")
	ErrModuleNotFound       = errors.New("module not found")
	ErrLessonNotFound       = errors.New("lesson not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrCohortNotFound       = errors.New("cohort not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrDuplicateOrder       = errors.New("order already taken within parent")
	ErrSubmissionFinal      = errors.New("submission has already been reviewed")
)

// LockedError rejects a project submission while the module's lessons are
// unfinished. It carries the counts the UI renders ("2/5 lessons done").
type LockedError struct {
	CompletedLessons int `json:"completedLessons"`
	TotalLessons     int `json:"totalLessons"`
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("project locked: %d/%d lessons completed", e.CompletedLessons, e.TotalLessons)
}

// ValidationError reports a malformed field. Field-by-field so the UI can
// attach the message to the offending input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ExternalServiceError wraps a failure from the assistant's LLM provider.
// Callers surface a generic retry message; the cause goes to the log only.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
