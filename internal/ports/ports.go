// Package ports defines the interfaces between the orchestration core and
// its external collaborators: the generative backend and the conversation
// store. Strategies depend on these interfaces, never on a concrete client,
// so tests can substitute deterministic fakes.
package ports

import (
	"context"

	"github.com/hsbukhari/nexus/internal/domain"
)

// TextRequest is a structured-text generation request.
type TextRequest struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
	Attachment        *domain.Attachment
	EnableSearch      bool
}

// ImageRequest asks for exactly one image.
type ImageRequest struct {
	Model       string
	Prompt      string
	AspectRatio string
	MIMEType    string
}

// ImageResult carries the raw image bytes of a synthesis call.
type ImageResult struct {
	Bytes    []byte
	MIMEType string
}

// VideoRequest asks for exactly one video.
type VideoRequest struct {
	Model       string
	Prompt      string
	Resolution  string
	AspectRatio string
}

// VideoOperation is the transient handle of a long-running video job. It
// lives only for the duration of one poll loop.
type VideoOperation struct {
	JobID     string
	Done      bool
	ResultURI string
}

// SpeechRequest asks for audio-modality output with a fixed voice.
type SpeechRequest struct {
	Model string
	Text  string
	Voice string
}

// SpeechResult carries synthesized audio bytes.
type SpeechResult struct {
	Bytes    []byte
	MIMEType string
}

// Backend is the generative service contract. Implementations must be safe
// for concurrent use; every method honors ctx cancellation.
type Backend interface {
	// GenerateText sends prompt text plus an optional inline attachment
	// and returns the model's free-form text output.
	GenerateText(ctx context.Context, req TextRequest) (string, error)

	// GenerateImage synthesizes a single image.
	GenerateImage(ctx context.Context, req ImageRequest) (*ImageResult, error)

	// StartVideo submits a video generation job and returns its handle.
	StartVideo(ctx context.Context, req VideoRequest) (*VideoOperation, error)

	// PollVideo re-queries a video job's status.
	PollVideo(ctx context.Context, op *VideoOperation) (*VideoOperation, error)

	// GenerateSpeech synthesizes audio for the given text.
	GenerateSpeech(ctx context.Context, req SpeechRequest) (*SpeechResult, error)
}

// ConversationStore is the append-only message log. The orchestrator is the
// only writer; renderers and the HTTP surface read.
type ConversationStore interface {
	Append(ctx context.Context, msg *domain.Message) error
	Messages(ctx context.Context) ([]*domain.Message, error)
	Close() error
}
