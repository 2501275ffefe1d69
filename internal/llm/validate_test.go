package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func suggestionTestSchema() *Schema {
	return &Schema{
		Name:        "word-suggestion-test",
		Description: "A dictionary-style word entry",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"definition":     map[string]any{"type": "string", "minLength": 1},
				"part_of_speech": map[string]any{"type": "string", "enum": []any{"noun", "verb", "adjective"}},
				"example":        map[string]any{"type": "string"},
			},
			"required": []any{"definition", "part_of_speech"},
		},
	}
}

func TestValidateResponseValid(t *testing.T) {
	raw := json.RawMessage(`{"definition":"lasting a very short time","part_of_speech":"adjective","example":"an ephemeral bloom"}`)
	if err := validateResponse(suggestionTestSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponseOptionalOmitted(t *testing.T) {
	raw := json.RawMessage(`{"definition":"a gentle wind","part_of_speech":"noun"}`)
	if err := validateResponse(suggestionTestSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponseMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"definition":"a gentle wind"}`)
	err := validateResponse(suggestionTestSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponseInvalidEnum(t *testing.T) {
	raw := json.RawMessage(`{"definition":"to saunter","part_of_speech":"gerund"}`)
	err := validateResponse(suggestionTestSchema(), raw)
	if err == nil {
		t.Fatal("expected error for invalid enum value")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponseMalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{not json}`)
	err := validateResponse(suggestionTestSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	raw := json.RawMessage(`anything goes`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected nil schema to pass, got: %v", err)
	}
}
