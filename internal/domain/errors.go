package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FailureKind categorizes a generation failure.
type FailureKind string

const (
	// FailureRateLimit indicates quota or rate limiting upstream.
	FailureRateLimit FailureKind = "rate_limit"

	// FailureSafety indicates the content was blocked by safety filtering.
	FailureSafety FailureKind = "safety"

	// FailureNetwork indicates a transport or connectivity problem.
	FailureNetwork FailureKind = "network"

	// FailureTimeout indicates a poll budget or deadline was exceeded.
	FailureTimeout FailureKind = "timeout"

	// FailureMalformed indicates a nominally successful response that
	// failed schema expectations (missing bytes, missing result URI).
	FailureMalformed FailureKind = "malformed"

	// FailureUnknown is everything else.
	FailureUnknown FailureKind = "unknown"
)

// GenerationError is the canonical failure a backend call produces.
// Strategies are failure boundaries: every error they see is converted into
// an error-flagged envelope via ErrorEnvelope, never rethrown upward.
type GenerationError struct {
	Kind    FailureKind
	Context string
	Message string
}

func (e *GenerationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Context, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewGenerationError creates a failure with an explicit kind.
func NewGenerationError(kind FailureKind, context, message string) *GenerationError {
	return &GenerationError{Kind: kind, Context: context, Message: message}
}

// ErrMalformed marks a success-status response that failed schema
// expectations.
func ErrMalformed(context, message string) *GenerationError {
	return NewGenerationError(FailureMalformed, context, message)
}

// ErrTimeout marks an exceeded poll budget or deadline.
func ErrTimeout(context, message string) *GenerationError {
	return NewGenerationError(FailureTimeout, context, message)
}

// Classify determines the failure kind of an arbitrary error. Errors that
// already carry a kind keep it; everything else is classified best-effort by
// inspecting the error text for known substrings, in fixed precedence. The
// matching is deliberately fuzzy and lives only here, so it can be replaced
// with structured backend error codes without touching call sites.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit"):
		return FailureRateLimit

	case strings.Contains(msg, "safety") ||
		strings.Contains(msg, "blocked"):
		return FailureSafety

	case strings.Contains(msg, "network") ||
		strings.Contains(msg, "fetch") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host"):
		return FailureNetwork

	case strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded"):
		return FailureTimeout
	}

	return FailureUnknown
}

var failureDisplay = map[FailureKind]struct {
	domain    string
	narrative string
}{
	FailureRateLimit: {
		domain:    "Resource Limit",
		narrative: "API Resource Quota Exceeded. Please wait a moment before retrying.",
	},
	FailureSafety: {
		domain:    "Safety Protocol",
		narrative: "The request was flagged by safety protocols. Please adjust your prompt.",
	},
	FailureNetwork: {
		domain:    "Network Error",
		narrative: "Network connection unstable. Unable to reach the AI core.",
	},
	FailureTimeout: {
		domain:    "Timeout",
		narrative: "The operation exceeded its time budget before the AI core finished.",
	},
	FailureMalformed: {
		domain:    "System Failure",
		narrative: "The AI core returned an incomplete result. Please retry.",
	},
	FailureUnknown: {
		domain:    "System Failure",
		narrative: "An unexpected disruption occurred in the neural link.",
	},
}

// ErrorEnvelope converts a raw failure into the canonical error-flagged
// response. The result always validates: non-empty narrative, a diagnostic
// analysis, and concrete next actions.
func ErrorEnvelope(err error, op string) *StructuredResponse {
	kind := Classify(err)
	display := failureDisplay[kind]

	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	if op != "" {
		detail = op + ": " + detail
	}

	return &StructuredResponse{
		Narrative:   display.narrative,
		VisualCues:  []string{"(error-glitch)", "(fade-red)"},
		Domain:      display.domain,
		ImpactScore: 0,
		Analysis:    "Error Details: " + detail,
		Widgets: []Widget{{
			Kind:    WidgetSummary,
			Title:   "Status Alert",
			Content: TextContent("Process Terminated."),
		}},
		SuggestedActions: []string{"Retry", "Check Connection", "Simplify Request"},
		ExportOptions:    []string{},
		Error:            true,
	}
}
