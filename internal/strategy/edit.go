package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

// EditStrategy performs image-conditioned editing in two stages: a vision
// pass derives a self-contained generation prompt describing the edited
// image, then the image strategy renders it. The vision stage is advisory
// only; when it fails or yields nothing usable, stage two runs with the
// user's original instruction so an edit is never silently dropped.
type EditStrategy struct {
	backend ports.Backend
	image   *ImageStrategy
	cfg     Config
	logger  *slog.Logger
}

// NewEditStrategy creates the two-stage edit strategy.
func NewEditStrategy(backend ports.Backend, image *ImageStrategy, cfg Config, logger *slog.Logger) *EditStrategy {
	return &EditStrategy{backend: backend, image: image, cfg: cfg, logger: logger}
}

func (s *EditStrategy) Kind() domain.StrategyKind { return domain.StrategyEdit }

// Generate runs vision analysis then image synthesis.
func (s *EditStrategy) Generate(ctx context.Context, req Request) *domain.StructuredResponse {
	prompt := req.Prompt

	derived, err := s.backend.GenerateText(ctx, ports.TextRequest{
		Model:       s.cfg.TextModel,
		Prompt:      visionInstruction(req.Prompt),
		Temperature: s.cfg.Temperature,
		Attachment:  req.Attachment,
	})
	switch {
	case err != nil:
		s.logger.Warn("editor vision stage failed, using original prompt",
			slog.String("error", err.Error()))
	case strings.TrimSpace(derived) == "":
		s.logger.Warn("editor vision stage returned no text, using original prompt")
	default:
		prompt = derived
	}

	return s.image.Generate(ctx, Request{Prompt: prompt, Mode: req.Mode})
}

func visionInstruction(userPrompt string) string {
	return fmt.Sprintf("Describe this image in detail. Then, considering the user's request: %q, create a full prompt for an image generator to recreate this image with the requested changes.", userPrompt)
}
