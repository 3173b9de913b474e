package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func verdictTestSchema() *Schema {
	return &Schema{
		Name:        "validate-verdict-test",
		Description: "A graded answer",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"isCorrect":  map[string]any{"type": "boolean"},
				"confidence": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"method":     map[string]any{"type": "string", "enum": []any{"ai_verification", "smart_fallback"}},
				"parts": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"isCorrect", "confidence"},
		},
	}
}

func testSchema() *Schema {
	return &Schema{
		Name:        "test-object",
		Description: "A test object",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":  map[string]any{"type": "string"},
				"age":   map[string]any{"type": "integer", "minimum": 0},
				"grade": map[string]any{"type": "string", "enum": []any{"A", "B", "C"}},
			},
			"required": []any{"name", "age"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"complete", `{"isCorrect":true,"confidence":95,"method":"ai_verification","parts":["x=2","x=-3"]}`, false},
		{"optional fields omitted", `{"isCorrect":false,"confidence":80}`, false},
		{"missing required", `{"isCorrect":true}`, true},
		{"wrong type", `{"isCorrect":"yes","confidence":90}`, true},
		{"confidence above range", `{"isCorrect":true,"confidence":120}`, true},
		{"unknown method", `{"isCorrect":true,"confidence":90,"method":"guess"}`, true},
		{"wrong item type", `{"isCorrect":true,"confidence":90,"parts":[2,-3]}`, true},
		{"not json", `isCorrect: true`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResponse(verdictTestSchema(), json.RawMessage(tt.raw))
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var invErr *ErrInvalidResponse
			if !errors.As(err, &invErr) {
				t.Fatalf("expected *ErrInvalidResponse, got %T (%v)", err, err)
			}
			if string(invErr.Content) != tt.raw {
				t.Errorf("Content = %s, want the raw response", invErr.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := ValidateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got: %v", err)
	}
}

func TestValidateResponse_CachesBySchemaName(t *testing.T) {
	first := &Schema{Name: "validate-cache-test", Definition: map[string]any{"type": "object"}}
	if err := ValidateResponse(first, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A second definition under the same name reuses the compiled schema.
	second := &Schema{Name: "validate-cache-test", Definition: map[string]any{"type": "array"}}
	if err := ValidateResponse(second, json.RawMessage(`{}`)); err != nil {
		t.Fatalf("expected cached object schema to accept {}, got: %v", err)
	}
}
