package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// AttachmentKind is the media category of an attachment.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentAudio AttachmentKind = "audio"
	AttachmentVideo AttachmentKind = "video"
)

// Attachment is user-supplied media accompanying a prompt. Data is the
// base64 payload without any data-URI prefix; the encoder in internal/media
// guarantees that shape.
type Attachment struct {
	Kind     AttachmentKind `json:"kind"`
	Data     string         `json:"data"`
	MIMEType string         `json:"mime_type,omitempty"`
}

// MIMETypeOrDefault returns the declared MIME type, falling back to a
// per-kind default when the capture layer did not supply one.
func (a *Attachment) MIMETypeOrDefault() string {
	if a.MIMEType != "" {
		return a.MIMEType
	}
	switch a.Kind {
	case AttachmentVideo:
		return "video/mp4"
	case AttachmentAudio:
		return "audio/wav"
	default:
		return "image/jpeg"
	}
}

// Message is one entry in the conversation log. Messages are append-only
// and never mutated after creation.
type Message struct {
	ID          string              `json:"id"`
	Role        Role                `json:"role"`
	DisplayText string              `json:"display_text"`
	Attachment  *Attachment         `json:"attachment,omitempty"`
	Structured  *StructuredResponse `json:"structured,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewUserMessage creates the user-side message for a send. An empty prompt
// with an attachment gets a default display text describing the media.
func NewUserMessage(text string, att *Attachment) *Message {
	if text == "" && att != nil {
		text = "Analyze this " + string(att.Kind)
	}
	return &Message{
		ID:          uuid.New().String(),
		Role:        RoleUser,
		DisplayText: text,
		Attachment:  att,
		CreatedAt:   time.Now().UTC(),
	}
}

// NewAssistantMessage wraps a structured response as the assistant-side
// message of an exchange.
func NewAssistantMessage(resp *StructuredResponse) *Message {
	return &Message{
		ID:          uuid.New().String(),
		Role:        RoleAssistant,
		DisplayText: resp.Narrative,
		Structured:  resp,
		CreatedAt:   time.Now().UTC(),
	}
}
