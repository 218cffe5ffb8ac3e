package domain

import "testing"

func TestNewUserMessage(t *testing.T) {
	t.Run("text only", func(t *testing.T) {
		m := NewUserMessage("hello", nil)
		if m.Role != RoleUser {
			t.Errorf("Role = %q", m.Role)
		}
		if m.DisplayText != "hello" {
			t.Errorf("DisplayText = %q", m.DisplayText)
		}
		if m.ID == "" {
			t.Error("expected generated ID")
		}
		if m.CreatedAt.IsZero() {
			t.Error("expected timestamp")
		}
	})

	t.Run("attachment only gets default text", func(t *testing.T) {
		att := &Attachment{Kind: AttachmentAudio, Data: "aGk="}
		m := NewUserMessage("", att)
		if m.DisplayText != "Analyze this audio" {
			t.Errorf("DisplayText = %q", m.DisplayText)
		}
		if m.Attachment != att {
			t.Error("attachment not carried")
		}
	})
}

func TestNewAssistantMessage(t *testing.T) {
	resp := &StructuredResponse{Narrative: "done", Domain: "d", Analysis: "a"}
	m := NewAssistantMessage(resp)
	if m.Role != RoleAssistant {
		t.Errorf("Role = %q", m.Role)
	}
	if m.DisplayText != "done" {
		t.Errorf("DisplayText = %q", m.DisplayText)
	}
	if m.Structured != resp {
		t.Error("structured response not carried")
	}
}

func TestMIMETypeOrDefault(t *testing.T) {
	tests := []struct {
		name string
		att  Attachment
		want string
	}{
		{"declared wins", Attachment{Kind: AttachmentImage, MIMEType: "image/png"}, "image/png"},
		{"video default", Attachment{Kind: AttachmentVideo}, "video/mp4"},
		{"audio default", Attachment{Kind: AttachmentAudio}, "audio/wav"},
		{"image default", Attachment{Kind: AttachmentImage}, "image/jpeg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.att.MIMETypeOrDefault(); got != tt.want {
				t.Errorf("MIMETypeOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}
