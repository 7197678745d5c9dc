package premium

import "github.com/dmehra/learnly/internal/llm"

// gradeSchema defines the JSON schema for essay grading responses.
var gradeSchema = &llm.Schema{
	Name:        "essay-grade",
	Description: "Structured feedback for a learner's essay answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     5,
				"description": "Overall score from 0 (no understanding) to 5 (complete and precise)",
			},
			"feedback": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "string",
				},
				"description": "Rubric dimension to comment, e.g. accuracy, completeness, clarity",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "Why the answer earned this score, referencing the question",
			},
		},
		"required":             []any{"score", "feedback", "reasoning"},
		"additionalProperties": false,
	},
}

// pathSchema defines the JSON schema for adaptive study plan responses.
var pathSchema = &llm.Schema{
	Name:        "adaptive-path",
	Description: "A personalized study plan built from quiz history",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weak_topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "At most 3 topics the learner is weakest in",
			},
			"recommendations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"topic":       map[string]any{"type": "string"},
						"reason":      map[string]any{"type": "string"},
						"action_item": map[string]any{"type": "string"},
						"priority": map[string]any{
							"type": "string",
							"enum": []any{"high", "medium", "low"},
						},
					},
					"required":             []any{"topic", "reason", "action_item", "priority"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"weak_topics", "recommendations"},
		"additionalProperties": false,
	},
}
