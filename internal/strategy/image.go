package strategy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/media"
	"github.com/hsbukhari/nexus/internal/ports"
)

const (
	imageAspectRatio = "16:9"
	imageMIMEType    = "image/jpeg"

	// volumetricPrefix rewrites prompts for the 3D generator mode.
	volumetricPrefix = "3D render, high fidelity, unreal engine 5 style, isometric, volumetric lighting, 8k resolution: "
)

// ImageStrategy synthesizes a single image. The same implementation serves
// the plain image studio and the 3D generator; the volumetric flag only
// changes the prompt framing and the display labels.
type ImageStrategy struct {
	backend    ports.Backend
	cfg        Config
	logger     *slog.Logger
	volumetric bool
}

// NewImageStrategy creates an image synthesis strategy.
func NewImageStrategy(backend ports.Backend, cfg Config, logger *slog.Logger, volumetric bool) *ImageStrategy {
	return &ImageStrategy{backend: backend, cfg: cfg, logger: logger, volumetric: volumetric}
}

func (s *ImageStrategy) Kind() domain.StrategyKind {
	if s.volumetric {
		return domain.StrategyThreeD
	}
	return domain.StrategyImage
}

// Generate requests exactly one image and wraps it as a data URI. A
// nominally successful response without image bytes is a failure, not a
// silent empty result.
func (s *ImageStrategy) Generate(ctx context.Context, req Request) *domain.StructuredResponse {
	finalPrompt := req.Prompt
	if s.volumetric {
		finalPrompt = volumetricPrefix + req.Prompt
	}

	result, err := s.backend.GenerateImage(ctx, ports.ImageRequest{
		Model:       s.cfg.ImageModel,
		Prompt:      finalPrompt,
		AspectRatio: imageAspectRatio,
		MIMEType:    imageMIMEType,
	})
	if err != nil {
		s.logger.Error("image generation failed", slog.String("error", err.Error()))
		return domain.ErrorEnvelope(err, "Image Generation")
	}
	if len(result.Bytes) == 0 {
		return domain.ErrorEnvelope(
			domain.ErrMalformed("image", "image generation failed to return bytes"),
			"Image Generation")
	}

	narrative := "Visual asset visualized. High-resolution render complete."
	respDomain := "Creative Studio"
	label := "Image"
	if s.volumetric {
		narrative = "3D Topology constructed. Rendering volumetric assets."
		respDomain = "3D Modeling"
		label = "3D Render"
	}

	return &domain.StructuredResponse{
		Narrative:        narrative,
		VisualCues:       []string{"(flash)", "(reveal-image)"},
		Domain:           respDomain,
		ImpactScore:      88,
		Analysis:         fmt.Sprintf("Generated %s for: %q. Model: %s.", label, req.Prompt, s.cfg.ImageModel),
		Widgets:          []domain.Widget{},
		SuggestedActions: []string{"Upscale", "Edit Image", "Save to Gallery"},
		ExportOptions:    []string{"JPEG", "PNG"},
		GeneratedMedia: &domain.GeneratedMedia{
			Kind:     domain.MediaImage,
			URL:      media.DataURI(imageMIMEType, result.Bytes),
			MIMEType: imageMIMEType,
		},
	}
}
