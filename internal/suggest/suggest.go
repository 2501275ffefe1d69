// Package suggest asks the configured language model for a definition
// when the dictionary lookup comes up empty during the add-word flow.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arnav/wordwise/internal/llm"
)

const suggestSystemPrompt = `You are a lexicographer writing concise dictionary entries. Given a word, produce one clear definition, its part of speech, and one short example sentence.`

// Suggestion is the model's proposed entry for a word.
type Suggestion struct {
	Definition   string `json:"definition"`
	PartOfSpeech string `json:"part_of_speech"`
	Example      string `json:"example"`
}

// Config holds suggestion settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for definition suggestions.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Service produces definition suggestions.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a suggestion service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Suggest asks the model for a definition of word.
func (s *Service) Suggest(ctx context.Context, word string) (*Suggestion, error) {
	ctx = llm.WithPurpose(ctx, "suggest")

	req := llm.Request{
		System: suggestSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Word: %s", word)},
		},
		Schema:      SuggestionSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("definition suggestion: %w", err)
	}

	var out Suggestion
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse suggestion response: %w", err)
	}
	if out.Definition == "" {
		return nil, fmt.Errorf("definition suggestion: %w",
			&llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty definition")})
	}
	return &out, nil
}
