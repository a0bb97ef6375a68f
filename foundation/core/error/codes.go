// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures across the
//              etds translator, its CLI, history store and HTTP service.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation with translator error codes

package error

import "net/http"

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Translation
	CodeLexError      Code = "LEX_ERROR"
	CodeSyntaxError   Code = "SYNTAX_ERROR"
	CodeTrailingInput Code = "TRAILING_INPUT"

	// Configuration and storage
	CodeConfigError  Code = "CONFIG_ERROR"
	CodeStorageError Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeLexError, CodeSyntaxError, CodeTrailingInput,
		CodeConfigError, CodeStorageError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexError, CodeSyntaxError, CodeTrailingInput:
		return "translation"
	case CodeConfigError:
		return "configuration"
	case CodeStorageError:
		return "storage"
	default:
		return "generic"
	}
}

// IsTranslation reports whether the code stems from rejected source text
func (c Code) IsTranslation() bool {
	return c.Category() == "translation"
}

// HTTPStatus returns the HTTP status code reported for this error code
func (c Code) HTTPStatus() int {
	switch c {
	case CodeLexError, CodeSyntaxError, CodeTrailingInput:
		return http.StatusUnprocessableEntity
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeStorageError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
