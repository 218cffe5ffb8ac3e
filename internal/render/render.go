// Package render maps a structured response to the typed widget views the
// presentation layer consumes. Rendering is pure and tolerant: malformed
// widget content degrades to a neutral view and never aborts the rest of
// the response.
package render

import (
	"github.com/hsbukhari/nexus/internal/domain"
)

// WidgetView is one renderable unit handed to the presentation layer.
type WidgetView struct {
	Kind  domain.WidgetKind `json:"kind"`
	Title string            `json:"title"`

	// Text carries the content of code, impact, summary and
	// security_report widgets.
	Text string `json:"text,omitempty"`

	// Steps carries the parsed step list of steps widgets.
	Steps []domain.Step `json:"steps,omitempty"`

	// Markup carries prototype content. Sandboxed is always true for
	// markup: the host must render it in an isolated context with no
	// script execution trust.
	Markup    string `json:"markup,omitempty"`
	Sandboxed bool   `json:"sandboxed,omitempty"`
}

// View is the complete render output: ordered widget views plus the
// top-level fields the side panel displays.
type View struct {
	Domain           string                 `json:"domain"`
	Analysis         string                 `json:"analysis"`
	ImpactScore      int                    `json:"impact_score"`
	SuggestedActions []string               `json:"suggested_actions"`
	Widgets          []WidgetView           `json:"widgets"`
	Alert            bool                   `json:"alert,omitempty"`
	Media            *domain.GeneratedMedia `json:"media,omitempty"`
}

// Render produces the view for an envelope. Unrecognized widget kinds are
// skipped, not fatal. Rendering the same envelope twice yields the same
// ordered views.
func Render(resp *domain.StructuredResponse) *View {
	view := &View{
		Domain:           resp.Domain,
		Analysis:         resp.Analysis,
		ImpactScore:      resp.ImpactScore,
		SuggestedActions: resp.SuggestedActions,
		Widgets:          make([]WidgetView, 0, len(resp.Widgets)),
		Alert:            resp.Error,
		Media:            resp.GeneratedMedia,
	}

	for _, w := range resp.Widgets {
		if v, ok := renderWidget(w); ok {
			view.Widgets = append(view.Widgets, v)
		}
	}
	return view
}

func renderWidget(w domain.Widget) (WidgetView, bool) {
	switch w.Kind {
	case domain.WidgetSteps:
		return WidgetView{
			Kind:  w.Kind,
			Title: w.Title,
			Steps: w.Content.AsSteps(),
		}, true

	case domain.WidgetPrototype:
		return WidgetView{
			Kind:      w.Kind,
			Title:     w.Title,
			Markup:    w.Content.String(),
			Sandboxed: true,
		}, true

	case domain.WidgetCode, domain.WidgetImpact, domain.WidgetChart,
		domain.WidgetSummary, domain.WidgetSecurityReport:
		return WidgetView{
			Kind:  w.Kind,
			Title: w.Title,
			Text:  w.Content.String(),
		}, true

	default:
		// Forward-compatible degrade: unknown kinds are ignored.
		return WidgetView{}, false
	}
}
