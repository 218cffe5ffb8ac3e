package domain

import (
	"encoding/json"
	"strings"
)

// WidgetKind is the finite set of renderable widget variants.
type WidgetKind string

const (
	WidgetCode           WidgetKind = "code"
	WidgetSteps          WidgetKind = "steps"
	WidgetImpact         WidgetKind = "impact"
	WidgetChart          WidgetKind = "chart"
	WidgetSummary        WidgetKind = "summary"
	WidgetPrototype      WidgetKind = "prototype"
	WidgetSecurityReport WidgetKind = "security_report"
)

// Known reports whether the kind is one of the seven variants this build
// renders. Unknown kinds are carried through the envelope and skipped at
// render time.
func (k WidgetKind) Known() bool {
	switch k {
	case WidgetCode, WidgetSteps, WidgetImpact, WidgetChart,
		WidgetSummary, WidgetPrototype, WidgetSecurityReport:
		return true
	}
	return false
}

// Step is a single entry of a steps widget.
type Step struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// WidgetContent is the polymorphic content of a widget: free text for most
// kinds, an ordered step list for steps widgets. The model frequently emits
// the step list as a JSON-encoded string; normalization happens once, when
// the envelope is normalized, so render code only ever sees the parsed form.
type WidgetContent struct {
	Text  string
	Steps []Step

	raw json.RawMessage
}

// TextContent creates plain text widget content.
func TextContent(text string) WidgetContent {
	return WidgetContent{Text: text}
}

// StepsContent creates step list widget content.
func StepsContent(steps ...Step) WidgetContent {
	return WidgetContent{Steps: steps}
}

// IsSteps reports whether the content carries a parsed step list.
func (c *WidgetContent) IsSteps() bool {
	return c.Steps != nil
}

// String returns the text form of the content. Step lists render as their
// titles joined by newlines.
func (c *WidgetContent) String() string {
	if c.Steps != nil {
		titles := make([]string, 0, len(c.Steps))
		for _, s := range c.Steps {
			titles = append(titles, s.Title)
		}
		return strings.Join(titles, "\n")
	}
	if c.Text != "" {
		return c.Text
	}
	return string(c.raw)
}

// MarshalJSON implements json.Marshaler.
func (c WidgetContent) MarshalJSON() ([]byte, error) {
	if c.Steps != nil {
		return json.Marshal(c.Steps)
	}
	if c.Text != "" || c.raw == nil {
		return json.Marshal(c.Text)
	}
	return c.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a string, a step
// array, or any other JSON value (kept raw for forward compatibility).
func (c *WidgetContent) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		c.Text = str
		c.Steps = nil
		c.raw = nil
		return nil
	}

	var steps []Step
	if err := json.Unmarshal(data, &steps); err == nil {
		c.Steps = steps
		c.Text = ""
		c.raw = nil
		return nil
	}

	c.raw = append(json.RawMessage(nil), data...)
	return nil
}

// AsSteps returns the parsed step list, parsing JSON-encoded text on the
// fly for envelopes built outside the normal decode path. Unparsable
// content yields an empty list, never an error.
func (c WidgetContent) AsSteps() []Step {
	if c.Steps != nil {
		return c.Steps
	}
	clone := c
	clone.normalizeSteps()
	return clone.Steps
}

// normalizeSteps parses text content that encodes a JSON step array. Parse
// failure degrades to an empty step list rather than an error, so one bad
// widget never takes down the rest of the response.
func (c *WidgetContent) normalizeSteps() {
	if c.Steps != nil {
		return
	}
	var steps []Step
	text := strings.TrimSpace(c.Text)
	if text == "" && c.raw != nil {
		text = string(c.raw)
	}
	if err := json.Unmarshal([]byte(text), &steps); err != nil {
		steps = []Step{}
	}
	c.Steps = steps
	c.Text = ""
	c.raw = nil
}

// Widget is one typed, renderable unit of a structured response. Widgets
// are immutable once attached to an envelope.
type Widget struct {
	Kind    WidgetKind    `json:"type"`
	Title   string        `json:"title"`
	Content WidgetContent `json:"content"`
}

// MediaKind is the category of generated media.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// GeneratedMedia points at an AI-generated asset, either a data URI or an
// access-augmented remote URL.
type GeneratedMedia struct {
	Kind     MediaKind `json:"type"`
	URL      string    `json:"url"`
	MIMEType string    `json:"mime_type"`
}

// StructuredResponse is the canonical envelope every strategy returns,
// success or failure. The presentation layer consumes nothing else.
type StructuredResponse struct {
	Narrative        string          `json:"narrative"`
	VisualCues       []string        `json:"visualCues,omitempty"`
	Domain           string          `json:"domain"`
	ImpactScore      int             `json:"impactScore"`
	Analysis         string          `json:"analysis"`
	Widgets          []Widget        `json:"widgets"`
	SuggestedActions []string        `json:"suggestedActions"`
	ExportOptions    []string        `json:"exportOptions,omitempty"`
	GeneratedMedia   *GeneratedMedia `json:"generatedMedia,omitempty"`
	Error            bool            `json:"error,omitempty"`
}

// Normalize repairs an envelope in place so downstream consumers can rely
// on its shape: required slices are non-nil, the impact score is clamped to
// 0..100, and steps widgets carry parsed step lists even when the model
// emitted them as JSON-encoded strings.
func (r *StructuredResponse) Normalize() {
	if r.ImpactScore < 0 {
		r.ImpactScore = 0
	}
	if r.ImpactScore > 100 {
		r.ImpactScore = 100
	}
	if r.Widgets == nil {
		r.Widgets = []Widget{}
	}
	if r.SuggestedActions == nil {
		r.SuggestedActions = []string{}
	}
	for i := range r.Widgets {
		if r.Widgets[i].Kind == WidgetSteps {
			r.Widgets[i].Content.normalizeSteps()
		}
	}
}

// Valid reports whether the envelope satisfies the schema's required
// fields. Error envelopes are valid by construction.
func (r *StructuredResponse) Valid() bool {
	return r.Narrative != "" && r.Domain != "" && r.Analysis != ""
}
