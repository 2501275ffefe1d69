package dict

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ephemeral" {
			t.Errorf("path = %q, want /ephemeral", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"word": "ephemeral",
			"phonetic": "/ɪˈfɛm(ə)ɹəl/",
			"meanings": [
				{
					"partOfSpeech": "adjective",
					"definitions": [
						{"definition": "Lasting for a short period of time.", "example": "ephemeral snow"}
					]
				}
			]
		}]`))
	}))
	defer srv.Close()

	c := NewClient()
	c.BaseURL = srv.URL

	entry, err := c.Lookup(context.Background(), "ephemeral")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if entry.Word != "ephemeral" {
		t.Errorf("word = %q", entry.Word)
	}
	def, pos := entry.First()
	if def != "Lasting for a short period of time." || pos != "adjective" {
		t.Errorf("First() = %q, %q", def, pos)
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title": "No Definitions Found"}`))
	}))
	defer srv.Close()

	c := NewClient()
	c.BaseURL = srv.URL

	_, err := c.Lookup(context.Background(), "zzzzzz")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient()
	c.BaseURL = srv.URL

	_, err := c.Lookup(context.Background(), "anything")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want non-nil non-NotFound error", err)
	}
}

func TestFirstSkipsEmptyDefinitions(t *testing.T) {
	e := &Entry{Meanings: []Meaning{
		{PartOfSpeech: "noun", Definitions: []Definition{{Text: ""}}},
		{PartOfSpeech: "verb", Definitions: []Definition{{Text: "to act"}}},
	}}
	def, pos := e.First()
	if def != "to act" || pos != "verb" {
		t.Errorf("First() = %q, %q", def, pos)
	}
}
