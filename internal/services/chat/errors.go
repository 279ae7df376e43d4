package chat

import (
	"errors"
	"fmt"
)

// ErrEmptyMessage is returned when a turn is attempted with a blank message.
// Nothing is persisted in that case.
var ErrEmptyMessage = errors.New("message cannot be empty")

// Error types for chat operations.
const (
	ErrTypeValidation = "VALIDATION_ERROR"
	ErrTypeRetrieval  = "RETRIEVAL_ERROR"
	ErrTypeCompletion = "COMPLETION_ERROR"
	ErrTypeNotFound   = "NOT_FOUND_ERROR"
)

// ChatError wraps errors raised during a chat turn with a stable type tag.
type ChatError struct {
	Type      string
	Message   string
	Operation string
	Cause     error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("chat %s [%s]: %s: %v", e.Operation, e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("chat %s [%s]: %s", e.Operation, e.Type, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Cause
}

func NewValidationError(operation, message string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Message: message, Operation: operation}
}

func NewRetrievalError(operation, message string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeRetrieval, Message: message, Operation: operation, Cause: cause}
}

func NewCompletionError(operation, message string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeCompletion, Message: message, Operation: operation, Cause: cause}
}
