// Package validate holds the leaf normalizers and format validators for
// document field values. Every function is pure and total: malformed or
// invalid input yields a structured rejection, never an error or panic.
package validate

import "strings"

// Result is the outcome of a single field validation. Valid carries the
// normalized value; invalid results carry a near-zero confidence and a
// human-readable message.
type Result struct {
	Valid      bool    `json:"valid"`
	Confidence float64 `json:"confidence"`
	Normalized string  `json:"normalized,omitempty"`
	Message    string  `json:"message,omitempty"`
}

// Accept builds a valid result.
func Accept(normalized string, confidence float64) Result {
	return Result{Valid: true, Confidence: confidence, Normalized: normalized}
}

// Reject builds an invalid result.
func Reject(confidence float64, message string) Result {
	return Result{Valid: false, Confidence: confidence, Message: message}
}

// NonEmpty is the trivial validator used for field kinds without a
// dedicated format check.
func NonEmpty(s string) Result {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Reject(0, "empty value")
	}
	return Accept(trimmed, 0.5)
}
