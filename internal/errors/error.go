package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryModel    Category = "model"
	CategoryStorage  Category = "storage"
	CategoryCatalog  Category = "catalog"
	CategoryGenerate Category = "generate"
	CategoryServer   Category = "server"
	CategoryCLI      Category = "cli"
)

// CanvasError is a structured error with a stable code, a detailed
// explanation, and a fix suggestion for terminal display.
type CanvasError struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Category is the error type (model, storage, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CanvasError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CanvasError) Unwrap() error {
	return e.Wrapped
}

// WithDetail adds a detailed explanation to the error.
func (e *CanvasError) WithDetail(d string) *CanvasError {
	e.Detail = d
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CanvasError) WithSuggestion(s string) *CanvasError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *CanvasError) Wrap(err error) *CanvasError {
	e.Wrapped = err
	return e
}

// New creates a CanvasError from a registered error code.
func New(code string) *CanvasError {
	template, ok := registry[code]
	if !ok {
		return &CanvasError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CanvasError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new CanvasError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CanvasError {
	return &CanvasError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CanvasError.
func FromError(err error, code string) *CanvasError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CanvasError); ok {
		return ce
	}
	return New(code).Wrap(err)
}

// HasCode reports whether err (or any error it wraps) is a CanvasError
// carrying the given code.
func HasCode(err error, code string) bool {
	var ce *CanvasError
	for stderrors.As(err, &ce) {
		if ce.Code == code {
			return true
		}
		err = ce.Wrapped
		if err == nil {
			return false
		}
	}
	return false
}
