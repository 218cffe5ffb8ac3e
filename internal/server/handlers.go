package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hsbukhari/nexus/internal/domain"
	"github.com/hsbukhari/nexus/internal/media"
	"github.com/hsbukhari/nexus/internal/orchestrator"
	"github.com/hsbukhari/nexus/internal/render"
	"github.com/hsbukhari/nexus/internal/strategy"
)

// maxUploadBytes bounds multipart attachment uploads.
const maxUploadBytes = 25 << 20

// Handlers binds the orchestration core to the HTTP surface.
type Handlers struct {
	orch   *orchestrator.Orchestrator
	speech *strategy.SpeechSynthesizer
	logger *slog.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(orch *orchestrator.Orchestrator, speech *strategy.SpeechSynthesizer, logger *slog.Logger) *Handlers {
	return &Handlers{orch: orch, speech: speech, logger: logger}
}

// Mount registers all routes on the router.
func (h *Handlers) Mount(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Post("/messages", h.handleSend)
		r.Get("/messages", h.handleListMessages)
		r.Get("/modes", h.handleListModes)
		r.Put("/mode", h.handleSetMode)
		r.Post("/speech", h.handleSpeech)
		r.Get("/insight", h.handleInsight)
		r.Post("/attachments", h.handleEncodeAttachment)
	})
}

type attachmentPayload struct {
	Kind     string `json:"kind,omitempty"`
	Data     string `json:"data"`
	MIMEType string `json:"mime_type,omitempty"`
}

type sendRequest struct {
	Text       string             `json:"text"`
	Attachment *attachmentPayload `json:"attachment,omitempty"`
}

type sendResponse struct {
	Response *domain.StructuredResponse `json:"response"`
	View     *render.View               `json:"view"`
}

func (h *Handlers) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var att *domain.Attachment
	if req.Attachment != nil {
		encoded, err := media.FromBase64(req.Attachment.Data, req.Attachment.MIMEType)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		// A capture layer that knows the kind (recorded audio without a
		// MIME type) may declare it explicitly.
		if k := domain.AttachmentKind(req.Attachment.Kind); k == domain.AttachmentImage ||
			k == domain.AttachmentAudio || k == domain.AttachmentVideo {
			encoded.Kind = k
		}
		att = encoded
	}

	resp, err := h.orch.HandleSend(r.Context(), req.Text, att)
	switch {
	case errors.Is(err, orchestrator.ErrBusy):
		writeError(w, http.StatusConflict, err.Error())
		return
	case errors.Is(err, orchestrator.ErrEmptyInput),
		errors.Is(err, orchestrator.ErrPromptTooLarge):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("send failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "send failed")
		return
	}

	writeJSON(w, http.StatusOK, sendResponse{Response: resp, View: render.Render(resp)})
}

func (h *Handlers) handleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.orch.Messages(r.Context())
	if err != nil {
		h.logger.Error("listing messages failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "listing messages failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

type modeEntry struct {
	ID          domain.Mode `json:"id"`
	Label       string      `json:"label"`
	Placeholder string      `json:"placeholder"`
	Active      bool        `json:"active"`
}

func (h *Handlers) handleListModes(w http.ResponseWriter, r *http.Request) {
	active := h.orch.Mode()
	entries := make([]modeEntry, 0, len(domain.Modes))
	for _, m := range domain.Modes {
		entries = append(entries, modeEntry{
			ID:          m,
			Label:       m.Label(),
			Placeholder: m.Placeholder(),
			Active:      m == active,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"modes": entries})
}

func (h *Handlers) handleSetMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode domain.Mode `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.orch.SetMode(req.Mode); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mode": req.Mode})
}

func (h *Handlers) handleSpeech(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio := h.speech.Synthesize(r.Context(), req.Text)
	if audio == "" {
		// Speech unavailable is not an error condition.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"audio": audio})
}

func (h *Handlers) handleInsight(w http.ResponseWriter, r *http.Request) {
	latest := h.orch.Latest()
	if latest == nil {
		writeError(w, http.StatusNotFound, "no analysis yet")
		return
	}
	writeJSON(w, http.StatusOK, render.Render(latest))
}

func (h *Handlers) handleEncodeAttachment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer f.Close()

	att, err := media.Encode(f, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, att)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
