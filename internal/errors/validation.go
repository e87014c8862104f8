package errors

import (
	"fmt"
)

// ValidationError is the base error for all validation-related errors
type ValidationError struct {
	*AppError
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		AppError: &AppError{
			Message:  message,
			ExitCode: ExitValidationError,
		},
	}
}

// EmptyInputError is raised when the user submits a blank message
type EmptyInputError struct {
	*AppError
}

// NewEmptyInputError creates a new empty input error
func NewEmptyInputError() *EmptyInputError {
	return &EmptyInputError{
		AppError: &AppError{
			Message: "Message is empty",
			Context: &ErrorContext{
				Operation:   "Reading user input",
				Component:   "Chat",
				Suggestions: []string{"Type a question, e.g. \"What's the weather like in Tokyo?\""},
			},
			ExitCode: ExitValidationError,
		},
	}
}

// ExportError is raised when a transcript cannot be written
type ExportError struct {
	*AppError
}

// NewExportError creates a new export error
func NewExportError(path string, cause error) *ExportError {
	return &ExportError{
		AppError: &AppError{
			Message: fmt.Sprintf("Failed to export transcript to %s", path),
			Cause:   cause,
			Context: &ErrorContext{
				Operation: "Transcript Export",
				Component: "Export",
				Details: map[string]interface{}{
					"path": path,
				},
				Suggestions: []string{
					"Check that the target directory exists and is writable",
					"Use a .html or .json extension",
				},
			},
			ExitCode: ExitIOError,
		},
	}
}
