package render

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/hsbukhari/nexus/internal/domain"
)

func sampleResponse() *domain.StructuredResponse {
	resp := &domain.StructuredResponse{
		Narrative:   "Build plan ready.",
		Domain:      "Engineering",
		ImpactScore: 80,
		Analysis:    "Three-phase rollout.",
		Widgets: []domain.Widget{
			{Kind: domain.WidgetSteps, Title: "Plan", Content: domain.StepsContent(
				domain.Step{Title: "Scaffold", Description: "Set up the project"},
				domain.Step{Title: "Ship"},
			)},
			{Kind: domain.WidgetCode, Title: "Patch", Content: domain.TextContent("diff --git")},
			{Kind: domain.WidgetPrototype, Title: "UI", Content: domain.TextContent("<main>hello</main>")},
		},
		SuggestedActions: []string{"Apply Patch"},
	}
	resp.Normalize()
	return resp
}

func TestRender(t *testing.T) {
	view := Render(sampleResponse())

	if view.Domain != "Engineering" || view.ImpactScore != 80 {
		t.Errorf("view header = %+v", view)
	}
	if view.Alert {
		t.Error("success envelope must not set alert")
	}
	if len(view.Widgets) != 3 {
		t.Fatalf("len(widgets) = %d, want 3", len(view.Widgets))
	}

	steps := view.Widgets[0]
	if steps.Kind != domain.WidgetSteps || len(steps.Steps) != 2 || steps.Steps[0].Title != "Scaffold" {
		t.Errorf("steps view = %+v", steps)
	}

	code := view.Widgets[1]
	if code.Text != "diff --git" {
		t.Errorf("code view = %+v", code)
	}

	proto := view.Widgets[2]
	if proto.Markup != "<main>hello</main>" {
		t.Errorf("prototype view = %+v", proto)
	}
	if !proto.Sandboxed {
		t.Error("prototype markup must be flagged sandboxed")
	}
}

func TestRenderIdempotent(t *testing.T) {
	resp := sampleResponse()
	first, err := json.Marshal(Render(resp))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := json.Marshal(Render(resp))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("render not idempotent:\n%s\n%s", first, second)
	}
}

func TestRenderSkipsUnknownKinds(t *testing.T) {
	resp := &domain.StructuredResponse{
		Narrative: "n", Domain: "d", Analysis: "a",
		Widgets: []domain.Widget{
			{Kind: domain.WidgetKind("hologram"), Title: "Future", Content: domain.TextContent("x")},
			{Kind: domain.WidgetSummary, Title: "Now", Content: domain.TextContent("y")},
		},
	}
	resp.Normalize()

	view := Render(resp)
	if len(view.Widgets) != 1 {
		t.Fatalf("len(widgets) = %d, want 1", len(view.Widgets))
	}
	if view.Widgets[0].Title != "Now" {
		t.Errorf("surviving widget = %+v", view.Widgets[0])
	}
}

func TestRenderStepsEmittedAsString(t *testing.T) {
	// Steps delivered as a JSON-encoded string render as a parsed list.
	resp := &domain.StructuredResponse{
		Narrative: "n", Domain: "d", Analysis: "a",
		Widgets: []domain.Widget{{
			Kind:    domain.WidgetSteps,
			Title:   "Plan",
			Content: domain.TextContent(`[{"title":"Step A"}]`),
		}},
	}
	resp.Normalize()

	view := Render(resp)
	want := []domain.Step{{Title: "Step A"}}
	if !reflect.DeepEqual(view.Widgets[0].Steps, want) {
		t.Errorf("steps = %+v, want %+v", view.Widgets[0].Steps, want)
	}
}

func TestRenderMalformedStepsDegradeToEmpty(t *testing.T) {
	resp := &domain.StructuredResponse{
		Narrative: "n", Domain: "d", Analysis: "a",
		Widgets: []domain.Widget{
			{Kind: domain.WidgetSteps, Title: "Broken", Content: domain.TextContent("{{{not json")},
			{Kind: domain.WidgetCode, Title: "Fine", Content: domain.TextContent("ok")},
		},
	}
	resp.Normalize()

	view := Render(resp)
	if len(view.Widgets) != 2 {
		t.Fatalf("one bad widget must not drop the rest, got %d views", len(view.Widgets))
	}
	if len(view.Widgets[0].Steps) != 0 {
		t.Errorf("malformed steps = %+v, want empty", view.Widgets[0].Steps)
	}
	if view.Widgets[1].Text != "ok" {
		t.Errorf("sibling widget = %+v", view.Widgets[1])
	}
}

func TestRenderErrorEnvelope(t *testing.T) {
	resp := domain.ErrorEnvelope(errors.New("quota exhausted"), "Nexus Generation")
	resp.Normalize()

	view := Render(resp)
	if !view.Alert {
		t.Error("error envelope must render with alert set")
	}
	if view.Domain != "Resource Limit" {
		t.Errorf("Domain = %q", view.Domain)
	}
	if len(view.Widgets) != 1 || view.Widgets[0].Text != "Process Terminated." {
		t.Errorf("widgets = %+v", view.Widgets)
	}
}
