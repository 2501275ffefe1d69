// Package addword is the add-word flow: type a word, look it up in the
// dictionary, fall back to an LLM suggestion, edit the definition, save.
package addword

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/dict"
	"github.com/arnav/wordwise/internal/screen"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/suggest"
	"github.com/arnav/wordwise/internal/ui/components"
	"github.com/arnav/wordwise/internal/ui/layout"
	"github.com/arnav/wordwise/internal/ui/theme"
	"github.com/arnav/wordwise/internal/vocab"
)

type phase int

const (
	phaseWord phase = iota
	phaseLookup
	phaseDefinition
)

// lookupDoneMsg carries the definition found for a word.
type lookupDoneMsg struct {
	Definition   string
	PartOfSpeech string
	Source       string
	Err          error
}

// wordSavedMsg confirms the word was stored.
type wordSavedMsg struct {
	Word vocab.Word
	Err  error
}

// AddWordScreen implements the add-word flow.
type AddWordScreen struct {
	words   store.WordRepo
	dict    *dict.Client
	suggest *suggest.Service
	log     zerolog.Logger

	phase        phase
	word         string
	wordInput    components.TextInput
	defInput     components.TextInput
	partOfSpeech string
	source       string
	notice       string
	errMsg       string
}

var _ screen.Screen = (*AddWordScreen)(nil)
var _ screen.KeyHintProvider = (*AddWordScreen)(nil)

// New creates a new AddWordScreen.
func New(words store.WordRepo, dictClient *dict.Client, suggestSvc *suggest.Service, log zerolog.Logger) *AddWordScreen {
	return &AddWordScreen{
		words:     words,
		dict:      dictClient,
		suggest:   suggestSvc,
		log:       log,
		wordInput: components.NewTextInput("Type a new word...", 60),
		defInput:  components.NewTextInput("Definition...", 300),
	}
}

func (a *AddWordScreen) Init() tea.Cmd {
	return a.wordInput.Init()
}

func (a *AddWordScreen) Title() string {
	return "Add Word"
}

func (a *AddWordScreen) KeyHints() []layout.KeyHint {
	switch a.phase {
	case phaseDefinition:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Look up"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (a *AddWordScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case lookupDoneMsg:
		return a.handleLookupDone(msg)

	case wordSavedMsg:
		return a.handleSaved(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.forwardToInput(msg)
}

func (a *AddWordScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() != "enter" {
		return a.forwardToInput(msg)
	}

	switch a.phase {
	case phaseWord:
		word := vocab.FormatWord(a.wordInput.Value())
		if word == "" {
			return a, nil
		}
		a.word = word
		a.phase = phaseLookup
		a.errMsg = ""
		a.notice = ""
		return a, a.lookup(word)

	case phaseDefinition:
		definition := a.defInput.Value()
		if definition == "" {
			return a, nil
		}
		return a, a.save(definition)
	}

	return a, nil
}

func (a *AddWordScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch a.phase {
	case phaseWord:
		a.wordInput, cmd = a.wordInput.Update(msg)
	case phaseDefinition:
		a.defInput, cmd = a.defInput.Update(msg)
	}
	return a, cmd
}

// lookup tries the dictionary first and the LLM suggestion second.
func (a *AddWordScreen) lookup(word string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		if a.dict != nil {
			entry, err := a.dict.Lookup(ctx, word)
			if err == nil {
				def, pos := entry.First()
				if def != "" {
					return lookupDoneMsg{Definition: def, PartOfSpeech: pos, Source: "dictionary"}
				}
			} else if !errors.Is(err, dict.ErrNotFound) {
				a.log.Warn().Err(err).Str("word", word).Msg("dictionary lookup failed")
			}
		}

		if a.suggest != nil {
			sug, err := a.suggest.Suggest(ctx, word)
			if err == nil {
				return lookupDoneMsg{Definition: sug.Definition, PartOfSpeech: sug.PartOfSpeech, Source: "suggested"}
			}
			a.log.Warn().Err(err).Str("word", word).Msg("definition suggestion failed")
		}

		return lookupDoneMsg{Source: "manual"}
	}
}

func (a *AddWordScreen) handleLookupDone(msg lookupDoneMsg) (screen.Screen, tea.Cmd) {
	a.phase = phaseDefinition
	a.source = msg.Source
	a.partOfSpeech = msg.PartOfSpeech
	a.defInput.Reset()
	a.defInput.Model.SetValue(msg.Definition)
	if msg.Definition == "" {
		a.notice = "No definition found. Write your own."
	}
	return a, a.defInput.Init()
}

func (a *AddWordScreen) save(definition string) tea.Cmd {
	w := vocab.Word{
		Text:         a.word,
		Definition:   definition,
		PartOfSpeech: a.partOfSpeech,
	}
	return func() tea.Msg {
		saved, err := a.words.Add(context.Background(), w)
		return wordSavedMsg{Word: saved, Err: err}
	}
}

func (a *AddWordScreen) handleSaved(msg wordSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, store.ErrDuplicate) {
			a.errMsg = fmt.Sprintf("%q is already in your vocabulary with that definition.", a.word)
		} else {
			a.errMsg = msg.Err.Error()
		}
		return a, nil
	}

	a.notice = fmt.Sprintf("Added %q.", msg.Word.Text)
	a.errMsg = ""
	a.phase = phaseWord
	a.word = ""
	a.partOfSpeech = ""
	a.source = ""
	a.wordInput.Reset()
	a.defInput.Reset()
	return a, a.wordInput.Init()
}

func (a *AddWordScreen) View(width, height int) string {
	var body string

	switch a.phase {
	case phaseWord:
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Add a word")
		body = prompt + "\n\n" + a.wordInput.View()
		if a.notice != "" {
			body += "\n\n" + theme.Correct.Render(a.notice)
		}

	case phaseLookup:
		body = theme.Hint.Render(fmt.Sprintf("Looking up %q...", a.word))

	case phaseDefinition:
		header := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(a.word)
		if a.partOfSpeech != "" {
			header += "  " + theme.Hint.Render(a.partOfSpeech)
		}
		sourceLine := ""
		switch a.source {
		case "dictionary":
			sourceLine = theme.Subtitle.Render("from dictionary — edit if you like")
		case "suggested":
			sourceLine = theme.Subtitle.Render("suggested definition — edit if you like")
		}
		body = header + "\n"
		if sourceLine != "" {
			body += sourceLine + "\n"
		}
		body += "\n" + a.defInput.View()
		if a.notice != "" {
			body += "\n\n" + theme.Hint.Render(a.notice)
		}
	}

	if a.errMsg != "" {
		body += "\n\n" + theme.Incorrect.Render(a.errMsg)
	}

	content := theme.Card.Width(width - 20).Render(body)
	return layout.Center(content, width, height)
}
