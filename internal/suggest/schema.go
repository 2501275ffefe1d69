package suggest

import "github.com/arnav/wordwise/internal/llm"

// SuggestionSchema defines the JSON schema for definition suggestions.
var SuggestionSchema = &llm.Schema{
	Name:        "word-suggestion",
	Description: "A dictionary-style definition for a vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition": map[string]any{
				"type":        "string",
				"description": "Concise dictionary-style definition (one sentence)",
			},
			"part_of_speech": map[string]any{
				"type": "string",
				"enum": []any{"noun", "verb", "adjective", "adverb", "preposition", "conjunction", "interjection", "pronoun"},
			},
			"example": map[string]any{
				"type":        "string",
				"description": "A short example sentence using the word",
			},
		},
		"required":             []any{"definition", "part_of_speech", "example"},
		"additionalProperties": false,
	},
}
