package narrative

import "github.com/abhisek/lddscreen/internal/llm"

// SummarySchema is the response shape requested from the LLM.
var SummarySchema = &llm.Schema{
	Name:        "report-narrative",
	Description: "Plain-language summary of a learning difficulty screening report for parents and teachers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One short paragraph describing the results in plain language",
			},
			"highlights": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"maxItems":    5,
				"description": "Up to five short points a parent or teacher should take away",
			},
		},
		"required":             []any{"summary", "highlights"},
		"additionalProperties": false,
	},
}
