package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("\\s*```$")
)

// ChatStrategy is the default conversational strategy: structured JSON
// generation with a per-mode persona, used by every mode that has no
// dedicated media pipeline.
type ChatStrategy struct {
	backend ports.Backend
	cfg     Config
	logger  *slog.Logger
}

// NewChatStrategy creates the conversational strategy.
func NewChatStrategy(backend ports.Backend, cfg Config, logger *slog.Logger) *ChatStrategy {
	return &ChatStrategy{backend: backend, cfg: cfg, logger: logger}
}

func (s *ChatStrategy) Kind() domain.StrategyKind { return domain.StrategyChat }

// Generate sends the prompt (plus an optional inline attachment) and parses
// the model output into the canonical envelope. Parsing has two failure
// tiers, deliberately distinct: text that is not valid envelope JSON
// degrades to a minimal envelope wrapping the raw text, while an entirely
// absent response is a hard failure converted to an error envelope.
func (s *ChatStrategy) Generate(ctx context.Context, req Request) *domain.StructuredResponse {
	text, err := s.backend.GenerateText(ctx, ports.TextRequest{
		Model:             s.cfg.TextModel,
		Prompt:            req.Prompt,
		SystemInstruction: s.systemInstruction(req.Mode),
		Temperature:       s.cfg.Temperature,
		Attachment:        req.Attachment,
		EnableSearch:      true,
	})
	if err != nil {
		s.logger.Error("chat generation failed",
			slog.String("mode", string(req.Mode)),
			slog.String("error", err.Error()))
		return domain.ErrorEnvelope(err, "Nexus Generation")
	}
	if strings.TrimSpace(text) == "" {
		return domain.ErrorEnvelope(
			domain.ErrMalformed("chat", "no response text received from model"),
			"Nexus Generation")
	}

	resp, ok := parseEnvelope(text)
	if !ok {
		s.logger.Warn("structured parse failed, degrading to raw narrative",
			slog.String("mode", string(req.Mode)))
		resp = degradedEnvelope(text)
	}
	resp.Normalize()
	return resp
}

func (s *ChatStrategy) systemInstruction(mode domain.Mode) string {
	return fmt.Sprintf(`%s
Current Mode: %s.

OUTPUT: JSON Object matching this schema:
%s

RULES:
- If SECURITY mode: Focus on risk assessment, permissions, and vulnerabilities.
- If CONVERTER mode: Provide 'code' widgets with conversion scripts.
- If ARCHITECT/MAGIC mode: Provide 'prototype' widget for UI.
`, mode.RoleInstruction(), mode.Label(), schemaJSON)
}

// parseEnvelope strips markdown code fences and decodes the envelope.
// Fence-wrapped JSON must parse identically to bare JSON.
func parseEnvelope(text string) (*domain.StructuredResponse, bool) {
	clean := strings.TrimSpace(text)
	clean = fenceOpen.ReplaceAllString(clean, "")
	clean = fenceClose.ReplaceAllString(clean, "")

	var resp domain.StructuredResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, false
	}
	if !resp.Valid() {
		return nil, false
	}
	return &resp, true
}

// degradedEnvelope wraps raw, unstructured model text so a malformed-but-
// present response still reaches the user.
func degradedEnvelope(raw string) *domain.StructuredResponse {
	return &domain.StructuredResponse{
		Narrative:        raw,
		VisualCues:       []string{},
		Domain:           "General Response",
		ImpactScore:      50,
		Analysis:         "Structured data parsing failed, displaying raw output.",
		Widgets:          []domain.Widget{},
		SuggestedActions: []string{},
		ExportOptions:    []string{},
	}
}
