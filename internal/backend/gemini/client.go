// Package gemini implements the generation backend ports on top of the
// Google Gen AI SDK. It is the only package that talks to the external
// service; strategies see ports.Backend and nothing else.
package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/ports"
)

// ClientOption configures the client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets a custom HTTP client, used by recorded tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// Client talks to the Gemini API.
type Client struct {
	client *genai.Client
}

var _ ports.Backend = (*Client)(nil)

// New creates a Gemini backend client authenticated with the given API key.
func New(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if o.httpClient != nil {
		cc.HTTPClient = o.httpClient
	}

	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{client: c}, nil
}

// GenerateText implements ports.Backend.
func (c *Client) GenerateText(ctx context.Context, req ports.TextRequest) (string, error) {
	var parts []*genai.Part

	if att := req.Attachment; att != nil {
		raw, err := base64.StdEncoding.DecodeString(att.Data)
		if err != nil {
			return "", domain.ErrMalformed("gemini text", "attachment payload is not valid base64")
		}
		parts = append(parts, genai.NewPartFromBytes(raw, att.MIMETypeOrDefault()))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(req.Temperature),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.EnableSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return resp.Text(), nil
}

// GenerateImage implements ports.Backend.
func (c *Client) GenerateImage(ctx context.Context, req ports.ImageRequest) (*ports.ImageResult, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    req.AspectRatio,
		OutputMIMEType: req.MIMEType,
	}

	resp, err := c.client.Models.GenerateImages(ctx, req.Model, req.Prompt, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate images: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil ||
		len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, domain.ErrMalformed("gemini image", "image generation failed to return bytes")
	}

	return &ports.ImageResult{
		Bytes:    resp.GeneratedImages[0].Image.ImageBytes,
		MIMEType: req.MIMEType,
	}, nil
}

// StartVideo implements ports.Backend.
func (c *Client) StartVideo(ctx context.Context, req ports.VideoRequest) (*ports.VideoOperation, error) {
	cfg := &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     req.Resolution,
		AspectRatio:    req.AspectRatio,
	}

	op, err := c.client.Models.GenerateVideos(ctx, req.Model, req.Prompt, nil, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate videos: %w", err)
	}

	return toVideoOperation(op), nil
}

// PollVideo implements ports.Backend.
func (c *Client) PollVideo(ctx context.Context, op *ports.VideoOperation) (*ports.VideoOperation, error) {
	polled, err := c.client.Operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: op.JobID}, nil)
	if err != nil {
		return nil, fmt.Errorf("gemini poll video operation: %w", err)
	}
	return toVideoOperation(polled), nil
}

// GenerateSpeech implements ports.Backend.
func (c *Client) GenerateSpeech(ctx context.Context, req ports.SpeechRequest) (*ports.SpeechResult, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}

	contents := []*genai.Content{genai.NewContentFromText(req.Text, genai.RoleUser)}
	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate speech: %w", err)
	}

	blob := firstInlineBlob(resp)
	if blob == nil || len(blob.Data) == 0 {
		return nil, domain.ErrMalformed("gemini speech", "speech generation returned no audio data")
	}

	mimeType := blob.MIMEType
	if mimeType == "" {
		mimeType = "audio/wav"
	}
	return &ports.SpeechResult{Bytes: blob.Data, MIMEType: mimeType}, nil
}

func toVideoOperation(op *genai.GenerateVideosOperation) *ports.VideoOperation {
	out := &ports.VideoOperation{
		JobID: op.Name,
		Done:  op.Done,
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 &&
		op.Response.GeneratedVideos[0].Video != nil {
		out.ResultURI = op.Response.GeneratedVideos[0].Video.URI
	}
	return out
}

func firstInlineBlob(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil {
				return part.InlineData
			}
		}
	}
	return nil
}
