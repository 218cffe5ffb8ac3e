// Package strategy implements one response-generation procedure per mode
// family. Every strategy is a failure boundary: Generate never returns an
// error, only an envelope, success or error-flagged.
package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

// Request is one generation request routed to a strategy.
type Request struct {
	Prompt     string
	Mode       domain.Mode
	Attachment *domain.Attachment
}

// Strategy is a self-contained request/response procedure for one mode
// family.
type Strategy interface {
	Kind() domain.StrategyKind
	Generate(ctx context.Context, req Request) *domain.StructuredResponse
}

// Config carries the model identities and tuning shared by the strategies.
type Config struct {
	TextModel   string
	ImageModel  string
	VideoModel  string
	SpeechModel string
	Voice       string

	Temperature  float32
	PollInterval time.Duration
	MaxPolls     int

	// APIKey is appended to video result URIs, which require the access
	// credential as a query parameter.
	APIKey string
}

// Registry resolves a strategy kind to its implementation. Resolution is
// total: unknown kinds fail closed to the conversational strategy.
type Registry struct {
	chat       *ChatStrategy
	strategies map[domain.StrategyKind]Strategy
}

// NewRegistry builds every strategy family against one backend.
func NewRegistry(backend ports.Backend, cfg Config, logger *slog.Logger) *Registry {
	chat := NewChatStrategy(backend, cfg, logger)
	image := NewImageStrategy(backend, cfg, logger, false)
	threeD := NewImageStrategy(backend, cfg, logger, true)
	video := NewVideoStrategy(backend, cfg, logger)
	edit := NewEditStrategy(backend, image, cfg, logger)

	return &Registry{
		chat: chat,
		strategies: map[domain.StrategyKind]Strategy{
			domain.StrategyChat:   chat,
			domain.StrategyImage:  image,
			domain.StrategyThreeD: threeD,
			domain.StrategyVideo:  video,
			domain.StrategyEdit:   edit,
		},
	}
}

// Resolve returns the strategy for the kind, defaulting to conversational.
func (r *Registry) Resolve(kind domain.StrategyKind) Strategy {
	if s, ok := r.strategies[kind]; ok {
		return s
	}
	return r.chat
}
