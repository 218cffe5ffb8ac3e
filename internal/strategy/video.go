package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

const (
	videoResolution  = "720p"
	videoAspectRatio = "16:9"
)

// VideoStrategy submits a long-running video generation job and polls it to
// completion. The loop is bounded twice: by the caller's context and by the
// configured poll budget, so an unresponsive job can never stall the
// orchestrator indefinitely.
type VideoStrategy struct {
	backend ports.Backend
	cfg     Config
	logger  *slog.Logger
}

// NewVideoStrategy creates a video synthesis strategy.
func NewVideoStrategy(backend ports.Backend, cfg Config, logger *slog.Logger) *VideoStrategy {
	return &VideoStrategy{backend: backend, cfg: cfg, logger: logger}
}

func (s *VideoStrategy) Kind() domain.StrategyKind { return domain.StrategyVideo }

// Generate runs the submit-poll-extract pipeline.
func (s *VideoStrategy) Generate(ctx context.Context, req Request) *domain.StructuredResponse {
	op, err := s.backend.StartVideo(ctx, ports.VideoRequest{
		Model:       s.cfg.VideoModel,
		Prompt:      req.Prompt,
		Resolution:  videoResolution,
		AspectRatio: videoAspectRatio,
	})
	if err != nil {
		s.logger.Error("video job submission failed", slog.String("error", err.Error()))
		return domain.ErrorEnvelope(err, "Video Generation")
	}

	polls := 0
	for !op.Done {
		if polls >= s.cfg.MaxPolls {
			return domain.ErrorEnvelope(
				domain.ErrTimeout("video", fmt.Sprintf("job %s still pending after %d polls", op.JobID, polls)),
				"Video Generation")
		}
		if err := sleepCtx(ctx, s.cfg.PollInterval); err != nil {
			return domain.ErrorEnvelope(err, "Video Generation")
		}

		polls++
		op, err = s.backend.PollVideo(ctx, op)
		if err != nil {
			s.logger.Error("video job poll failed",
				slog.Int("polls", polls),
				slog.String("error", err.Error()))
			return domain.ErrorEnvelope(err, "Video Generation")
		}
	}

	if op.ResultURI == "" {
		return domain.ErrorEnvelope(
			domain.ErrMalformed("video", "video generation failed to return a URI"),
			"Video Generation")
	}

	s.logger.Info("video job completed",
		slog.String("job_id", op.JobID),
		slog.Int("polls", polls))

	return &domain.StructuredResponse{
		Narrative:        "Visual sequence materialized. Rendering high-fidelity motion stream.",
		VisualCues:       []string{"(cinematic-fade)", "(play-video)"},
		Domain:           "Video Production",
		ImpactScore:      95,
		Analysis:         fmt.Sprintf("Generated %s video based on prompt: %q. Model: %s.", videoResolution, req.Prompt, s.cfg.VideoModel),
		Widgets:          []domain.Widget{},
		SuggestedActions: []string{"Download Video", "Generate Variations", "Extend Clip"},
		ExportOptions:    []string{"MP4"},
		GeneratedMedia: &domain.GeneratedMedia{
			Kind:     domain.MediaVideo,
			URL:      authenticateURI(op.ResultURI, s.cfg.APIKey),
			MIMEType: "video/mp4",
		},
	}
}

// authenticateURI appends the access credential the result URI requires.
func authenticateURI(uri, apiKey string) string {
	sep := "?"
	if strings.Contains(uri, "?") {
		sep = "&"
	}
	return uri + sep + "key=" + apiKey
}

// sleepCtx waits for the poll interval or until the context ends.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
