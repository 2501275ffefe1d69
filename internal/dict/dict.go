// Package dict looks up word definitions from the free Dictionary API
// (api.dictionaryapi.dev). It backs the add-word flow: a successful
// lookup pre-fills the definition, a miss falls back to the LLM
// suggestion.
package dict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

// ErrNotFound means the dictionary has no entry for the word.
var ErrNotFound = errors.New("dict: no definitions found")

// Entry is one dictionary entry for a word.
type Entry struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning groups definitions under one part of speech.
type Meaning struct {
	PartOfSpeech string       `json:"partOfSpeech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition is a single sense of the word.
type Definition struct {
	Text    string `json:"definition"`
	Example string `json:"example"`
}

// First returns the entry's first definition and its part of speech, or
// empty strings when the entry carries none.
func (e *Entry) First() (definition, partOfSpeech string) {
	for _, m := range e.Meanings {
		for _, d := range m.Definitions {
			if d.Text != "" {
				return d.Text, m.PartOfSpeech
			}
		}
	}
	return "", ""
}

// Client queries the Dictionary API.
type Client struct {
	// BaseURL overrides the API endpoint. Tests point it at a local server.
	BaseURL string

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client
}

// NewClient returns a client with a 10 second request timeout.
func NewClient() *Client {
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup fetches the first entry for word. Returns ErrNotFound when the
// dictionary has no entry.
func (c *Client) Lookup(ctx context.Context, word string) (*Entry, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		base+"/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %q: %w", word, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, word)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("lookup %q: unexpected status %s", word, resp.Status)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, word)
	}
	return &entries[0], nil
}
