package strategy

import (
	"context"
	"log/slog"

	"github.com/hsbukhari/nexus/internal/media"
	"github.com/hsbukhari/nexus/internal/ports"
)

// SpeechSynthesizer turns narrative text into playable audio. It does not
// produce envelopes: the caller decides how to surface the audio, and a
// failure simply means speech is unavailable.
type SpeechSynthesizer struct {
	backend ports.Backend
	cfg     Config
	logger  *slog.Logger
}

// NewSpeechSynthesizer creates the text-to-speech strategy.
func NewSpeechSynthesizer(backend ports.Backend, cfg Config, logger *slog.Logger) *SpeechSynthesizer {
	return &SpeechSynthesizer{backend: backend, cfg: cfg, logger: logger}
}

// Synthesize returns a playable audio data URI, or an empty string when
// speech is unavailable. Failures are logged, never escalated.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text string) string {
	result, err := s.backend.GenerateSpeech(ctx, ports.SpeechRequest{
		Model: s.cfg.SpeechModel,
		Text:  text,
		Voice: s.cfg.Voice,
	})
	if err != nil {
		s.logger.Warn("speech synthesis unavailable", slog.String("error", err.Error()))
		return ""
	}
	return media.DataURI(result.MIMEType, result.Bytes)
}
