// Package orchestrator routes user sends to generation strategies and owns
// the conversation session: the current mode, the latest analysis, and the
// single-flight send latch.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
	"github.com/hsbukhari/nexus/internal/strategy"
	"github.com/hsbukhari/nexus/internal/tokens"
)

// ErrBusy is returned when a send arrives while another is in flight. The
// latch is mutual exclusion, not a queue: the second send is rejected, not
// buffered.
var ErrBusy = errors.New("a send is already in flight")

// ErrEmptyInput is returned when a send carries neither text nor media.
var ErrEmptyInput = errors.New("send requires prompt text or an attachment")

// ErrPromptTooLarge is returned when the prompt exceeds the configured
// token budget. The request is rejected before dispatch; nothing is
// appended to the conversation.
var ErrPromptTooLarge = errors.New("prompt exceeds token budget")

// sendState is the explicit state machine guarding the entry point.
type sendState int

const (
	stateIdle sendState = iota
	stateSending
)

// Orchestrator is the single writer of the conversation log.
type Orchestrator struct {
	store      ports.ConversationStore
	strategies *strategy.Registry
	counter    *tokens.Counter
	budget     int
	logger     *slog.Logger

	mu     sync.Mutex
	state  sendState
	mode   domain.Mode
	latest *domain.StructuredResponse
}

// New creates an orchestrator starting in the universal mode.
func New(store ports.ConversationStore, strategies *strategy.Registry, counter *tokens.Counter, budget int, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		store:      store,
		strategies: strategies,
		counter:    counter,
		budget:     budget,
		logger:     logger,
		mode:       domain.ModeUniversal,
	}
}

// Mode returns the active mode.
func (o *Orchestrator) Mode() domain.Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// SetMode switches the active mode. Only members of the closed mode set
// are accepted.
func (o *Orchestrator) SetMode(m domain.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("unknown mode %q", m)
	}
	o.mu.Lock()
	o.mode = m
	o.mu.Unlock()
	return nil
}

// Latest returns the most recent structured response, for the side panel.
// Nil until the first exchange completes.
func (o *Orchestrator) Latest() *domain.StructuredResponse {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.latest
}

// Messages returns the ordered conversation log.
func (o *Orchestrator) Messages(ctx context.Context) ([]*domain.Message, error) {
	return o.store.Messages(ctx)
}

// HandleSend runs one request to exactly one terminal outcome. The user
// message is appended before dispatch and exactly one assistant message
// (success or error envelope) after, preserving strict request/response
// pairing in the log. The attachment belongs to this send alone; callers
// clear their staging before invoking so a second send cannot reattach it.
func (o *Orchestrator) HandleSend(ctx context.Context, text string, att *domain.Attachment) (*domain.StructuredResponse, error) {
	if text == "" && att == nil {
		return nil, ErrEmptyInput
	}

	promptTokens := o.counter.Count(text)
	if o.budget > 0 && promptTokens > o.budget {
		return nil, fmt.Errorf("%w: %d tokens, budget %d", ErrPromptTooLarge, promptTokens, o.budget)
	}

	o.mu.Lock()
	if o.state == stateSending {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	o.state = stateSending
	mode := o.mode
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.state = stateIdle
		o.mu.Unlock()
	}()

	userMsg := domain.NewUserMessage(text, att)
	if err := o.store.Append(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("appending user message: %w", err)
	}

	kind := domain.ResolveStrategy(mode, att)
	o.logger.Info("dispatching send",
		slog.String("mode", string(mode)),
		slog.String("strategy", string(kind)),
		slog.Int("prompt_tokens", promptTokens),
		slog.Bool("has_attachment", att != nil))

	resp := o.strategies.Resolve(kind).Generate(ctx, strategy.Request{
		Prompt:     userMsg.DisplayText,
		Mode:       mode,
		Attachment: att,
	})
	resp.Normalize()

	if err := o.store.Append(ctx, domain.NewAssistantMessage(resp)); err != nil {
		// The envelope still reaches the caller; only the log entry is lost.
		o.logger.Error("appending assistant message failed", slog.String("error", err.Error()))
	}

	o.mu.Lock()
	o.latest = resp
	o.mu.Unlock()

	return resp, nil
}
