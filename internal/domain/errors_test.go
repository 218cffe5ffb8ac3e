package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailureKind
	}{
		{"nil", nil, FailureUnknown},
		{"quota text", errors.New("quota exhausted for project"), FailureRateLimit},
		{"status code 429", errors.New("googleapi: Error 429: too many requests"), FailureRateLimit},
		{"rate limit text", errors.New("rate limit exceeded"), FailureRateLimit},
		{"safety text", errors.New("response blocked by SAFETY settings"), FailureSafety},
		{"blocked text", errors.New("prompt was blocked"), FailureSafety},
		{"network text", errors.New("network is unreachable"), FailureNetwork},
		{"fetch text", errors.New("failed to fetch"), FailureNetwork},
		{"connection refused", errors.New("dial tcp: connection refused"), FailureNetwork},
		{"no such host", errors.New("lookup api.example: no such host"), FailureNetwork},
		{"deadline text", errors.New("context deadline exceeded"), FailureTimeout},
		{"deadline sentinel", context.DeadlineExceeded, FailureTimeout},
		{"wrapped deadline", fmt.Errorf("calling model: %w", context.DeadlineExceeded), FailureTimeout},
		{"anything else", errors.New("internal server error"), FailureUnknown},
		// quota wins over later categories when both substrings appear
		{"quota beats network", errors.New("network error: quota exceeded"), FailureRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyKeepsExplicitKind(t *testing.T) {
	// A typed error keeps its kind even when the message would classify
	// differently by substring.
	err := NewGenerationError(FailureTimeout, "video", "quota text that looks like rate limiting")
	if got := Classify(err); got != FailureTimeout {
		t.Errorf("Classify = %q, want %q", got, FailureTimeout)
	}

	wrapped := fmt.Errorf("generating: %w", ErrMalformed("image", "no bytes"))
	if got := Classify(wrapped); got != FailureMalformed {
		t.Errorf("Classify(wrapped) = %q, want %q", got, FailureMalformed)
	}
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantDomain string
	}{
		{"rate limit", errors.New("429 resource exhausted"), "Resource Limit"},
		{"safety", errors.New("blocked by safety filter"), "Safety Protocol"},
		{"network", errors.New("fetch failed"), "Network Error"},
		{"timeout", ErrTimeout("video", "poll budget exhausted"), "Timeout"},
		{"unknown", errors.New("something odd"), "System Failure"},
		{"nil error", nil, "System Failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ErrorEnvelope(tt.err, "Nexus Generation")

			if !resp.Error {
				t.Error("error envelope must set the error flag")
			}
			if resp.Domain != tt.wantDomain {
				t.Errorf("Domain = %q, want %q", resp.Domain, tt.wantDomain)
			}
			if !resp.Valid() {
				t.Error("error envelope must validate")
			}
			if resp.ImpactScore != 0 {
				t.Errorf("ImpactScore = %d, want 0", resp.ImpactScore)
			}
			if len(resp.SuggestedActions) == 0 {
				t.Error("error envelope must carry recovery actions")
			}
			if len(resp.Widgets) != 1 || resp.Widgets[0].Kind != WidgetSummary {
				t.Errorf("widgets = %+v, want one summary", resp.Widgets)
			}
		})
	}
}

func TestErrorEnvelopeIncludesOperation(t *testing.T) {
	resp := ErrorEnvelope(errors.New("boom"), "Image Generation")
	if want := "Error Details: Image Generation: boom"; resp.Analysis != want {
		t.Errorf("Analysis = %q, want %q", resp.Analysis, want)
	}
}

func TestGenerationErrorMessage(t *testing.T) {
	err := NewGenerationError(FailureMalformed, "image", "no bytes returned")
	if got, want := err.Error(), "image: malformed: no bytes returned"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	bare := NewGenerationError(FailureUnknown, "", "boom")
	if got, want := bare.Error(), "unknown: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
