// Package media normalizes user-captured media (uploaded files, recorded
// audio) into the transport-ready attachment shape the orchestrator
// consumes: a base64 payload, a kind tag, and a MIME type.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/hsbukhari/nexus/internal/domain"
)

// maxAttachmentBytes bounds a single attachment. Inline payloads ride
// inside generation requests, so oversized media has to be rejected here
// rather than failing opaquely at the backend.
const maxAttachmentBytes = 20 << 20

// KindForMIME maps a MIME type to the attachment kind. Anything that is
// not video or audio is treated as an image, matching how the capture
// layer tags file uploads.
func KindForMIME(mimeType string) domain.AttachmentKind {
	switch {
	case strings.HasPrefix(mimeType, "video/"):
		return domain.AttachmentVideo
	case strings.HasPrefix(mimeType, "audio/"),
		strings.HasPrefix(mimeType, "application/ogg"):
		return domain.AttachmentAudio
	default:
		return domain.AttachmentImage
	}
}

// Encode reads binary media and produces an attachment.
func Encode(r io.Reader, mimeType string) (*domain.Attachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxAttachmentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading media: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty media payload")
	}
	if len(data) > maxAttachmentBytes {
		return nil, fmt.Errorf("media payload exceeds %d bytes", maxAttachmentBytes)
	}

	return &domain.Attachment{
		Kind:     KindForMIME(mimeType),
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}, nil
}

// FromBase64 builds an attachment from an already-encoded payload, for
// example a recorded audio blob delivered by the capture layer. Data-URI
// prefixes ("data:audio/webm;base64,...") are stripped; the embedded MIME
// type wins when the caller did not supply one.
func FromBase64(encoded, mimeType string) (*domain.Attachment, error) {
	payload := encoded
	if strings.HasPrefix(payload, "data:") {
		header, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, fmt.Errorf("malformed data URI")
		}
		payload = rest
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("empty media payload")
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return nil, fmt.Errorf("invalid base64 payload: %w", err)
	}

	return &domain.Attachment{
		Kind:     KindForMIME(mimeType),
		Data:     payload,
		MIMEType: mimeType,
	}, nil
}

// DataURI renders binary media as a data URI for the presentation layer.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
