// File: internal/services/vectorstore/errors.go
package vectorstore

import "fmt"

// StoreError wraps backend failures with the failing operation.
type StoreError struct {
	Type    string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("vectorstore %s error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("vectorstore %s error: %s", e.Type, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewConfigError(message string) *StoreError {
	return &StoreError{Type: "config", Message: message}
}

func NewOperationError(message string, err error) *StoreError {
	return &StoreError{Type: "operation", Message: message, Err: err}
}
