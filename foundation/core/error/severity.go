// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels used to decide how loudly an error
//              is logged.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks rejected user input
	SeverityLow Severity = iota

	// SeverityMedium marks recoverable failures
	SeverityMedium

	// SeverityHigh marks failures of a backing resource such as the history database
	SeverityHigh

	// SeverityCritical marks a state the process cannot continue from
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeLexError, CodeSyntaxError, CodeTrailingInput, CodeInvalidInput, CodeNotFound:
		return SeverityLow
	case CodeStorageError, CodeConfigError:
		return SeverityHigh
	case CodeInternal:
		return SeverityCritical
	default:
		return SeverityMedium
	}
}
