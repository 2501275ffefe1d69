package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/arnav/wordwise/internal/llm"
)

func TestSuggest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"definition": "Lasting for a very short time.",
			"part_of_speech": "adjective",
			"example": "The ephemeral beauty of a sunset."
		}`),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Suggest(context.Background(), "ephemeral")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got.Definition != "Lasting for a very short time." {
		t.Errorf("definition = %q", got.Definition)
	}
	if got.PartOfSpeech != "adjective" {
		t.Errorf("part of speech = %q", got.PartOfSpeech)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != SuggestionSchema {
		t.Error("request missing suggestion schema")
	}
	if req.Messages[0].Content != "Word: ephemeral" {
		t.Errorf("user message = %q", req.Messages[0].Content)
	}
}

func TestSuggestProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(mock, DefaultConfig())

	if _, err := svc.Suggest(context.Background(), "word"); err == nil {
		t.Fatal("expected error from failing provider")
	}
}

func TestSuggestMalformedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"definition": ""}`),
	})
	svc := NewService(mock, DefaultConfig())

	_, err := svc.Suggest(context.Background(), "word")
	if err == nil {
		t.Fatal("expected error for empty definition")
	}
	var invalid *llm.ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}
