package oracle

import "github.com/abhisek/mathtutor/internal/llm"

// ResponseSchema validates replies from the HTTP grading proxy.
var ResponseSchema = &llm.Schema{
	Name:        "oracle-response",
	Description: "Reply of the answer grading proxy",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"success":     map[string]any{"type": "boolean"},
			"isCorrect":   map[string]any{"type": "boolean"},
			"isPartial":   map[string]any{"type": "boolean"},
			"confidence":  map[string]any{"type": "number", "minimum": 0.0, "maximum": 100.0},
			"feedback":    map[string]any{"type": "string"},
			"explanation": map[string]any{"type": "string"},
			"whatCorrect": map[string]any{"type": []any{"string", "null"}},
			"whatMissing": map[string]any{"type": []any{"string", "null"}},
			"error":       map[string]any{"type": "string"},
		},
		"required": []any{"success"},
		"if": map[string]any{
			"properties": map[string]any{"success": map[string]any{"const": true}},
		},
		"then": map[string]any{
			"required": []any{"isCorrect"},
		},
	},
}

// VerdictSchema is the structured output requested from an LLM grader.
var VerdictSchema = &llm.Schema{
	Name:        "answer-verdict",
	Description: "Grade of a learner's answer to a math question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "True when the learner's answer is mathematically equivalent to the correct answer",
			},
			"isPartial": map[string]any{
				"type":        "boolean",
				"description": "True when the answer is on the right track but incomplete. Must be false when isCorrect is true.",
			},
			"confidence": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Confidence in the grade, 0-100",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "One short encouraging sentence in Hebrew addressed to the learner by name",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief explanation in Hebrew of why the answer is right or wrong",
			},
			"whatCorrect": map[string]any{
				"type":        "string",
				"description": "The part of the answer that is correct, or empty",
			},
			"whatMissing": map[string]any{
				"type":        "string",
				"description": "What is missing or wrong, or empty",
			},
		},
		"required":             []any{"isCorrect", "isPartial", "confidence", "feedback", "explanation", "whatCorrect", "whatMissing"},
		"additionalProperties": false,
	},
}
