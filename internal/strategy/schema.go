package strategy

import "encoding/json"

// responseSchemaDef describes the envelope the model must emit. It is
// serialized into the system instruction of every conversational request so
// the model returns one JSON object in the canonical shape.
var responseSchemaDef = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"narrative": map[string]any{
			"type":        "STRING",
			"description": "Cinematic, emotional, high-tech storytelling narration.",
		},
		"visualCues": map[string]any{
			"type":        "ARRAY",
			"items":       map[string]any{"type": "STRING"},
			"description": "Animation triggers: '(glow-in)', '(slide-left)', '(particles-fast)', '(rotate-3d)'.",
		},
		"domain": map[string]any{
			"type":        "STRING",
			"description": "Detected domain.",
		},
		"impactScore": map[string]any{
			"type":        "INTEGER",
			"description": "Impact score 0-100.",
		},
		"analysis": map[string]any{
			"type":        "STRING",
			"description": "Deep insightful analysis utilizing researched data.",
		},
		"widgets": map[string]any{
			"type": "ARRAY",
			"items": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"type": map[string]any{
						"type": "STRING",
						"enum": []string{"code", "steps", "impact", "chart", "summary", "prototype", "security_report"},
					},
					"title": map[string]any{"type": "STRING"},
					"content": map[string]any{
						"type":        "STRING",
						"description": "For 'prototype', valid HTML/Tailwind. For steps, JSON array.",
					},
				},
			},
			"description": "UI Components.",
		},
		"suggestedActions": map[string]any{
			"type":  "ARRAY",
			"items": map[string]any{"type": "STRING"},
		},
		"exportOptions": map[string]any{
			"type":  "ARRAY",
			"items": map[string]any{"type": "STRING"},
		},
	},
	"required": []string{"narrative", "domain", "impactScore", "analysis", "widgets", "suggestedActions"},
}

// schemaJSON is the serialized form embedded into system instructions.
var schemaJSON = func() string {
	b, err := json.MarshalIndent(responseSchemaDef, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}()
