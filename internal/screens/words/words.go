// Package words is the vocabulary list screen with per-word stats and
// deletion.
package words

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/screen"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/ui/layout"
	"github.com/arnav/wordwise/internal/ui/theme"
	"github.com/arnav/wordwise/internal/vocab"
)

// wordsLoadedMsg carries the vocabulary list.
type wordsLoadedMsg struct {
	Words []vocab.Word
	Err   error
}

// wordDeletedMsg confirms a deletion.
type wordDeletedMsg struct {
	Err error
}

// WordsScreen lists the vocabulary.
type WordsScreen struct {
	repo store.WordRepo
	log  zerolog.Logger

	words    []vocab.Word
	selected int
	offset   int
	loaded   bool
	confirm  bool
	errMsg   string
}

var _ screen.Screen = (*WordsScreen)(nil)
var _ screen.KeyHintProvider = (*WordsScreen)(nil)

// New creates a new WordsScreen.
func New(repo store.WordRepo, log zerolog.Logger) *WordsScreen {
	return &WordsScreen{repo: repo, log: log}
}

func (w *WordsScreen) Init() tea.Cmd {
	return w.load()
}

func (w *WordsScreen) Title() string {
	return "Word List"
}

func (w *WordsScreen) KeyHints() []layout.KeyHint {
	if w.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete word"},
		{Key: "Esc", Description: "Back"},
	}
}

func (w *WordsScreen) load() tea.Cmd {
	return func() tea.Msg {
		list, err := w.repo.List(context.Background())
		return wordsLoadedMsg{Words: list, Err: err}
	}
}

func (w *WordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordsLoadedMsg:
		w.loaded = true
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		w.words = msg.Words
		if w.selected >= len(w.words) {
			w.selected = len(w.words) - 1
		}
		if w.selected < 0 {
			w.selected = 0
		}
		return w, nil

	case wordDeletedMsg:
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			return w, nil
		}
		return w, w.load()

	case tea.KeyMsg:
		return w.handleKey(msg)
	}

	return w, nil
}

func (w *WordsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if w.confirm {
		switch msg.String() {
		case "y", "Y":
			w.confirm = false
			if w.selected < len(w.words) {
				id := w.words[w.selected].ID
				return w, func() tea.Msg {
					return wordDeletedMsg{Err: w.repo.Delete(context.Background(), id)}
				}
			}
		case "n", "N", "esc":
			w.confirm = false
		}
		return w, nil
	}

	switch msg.String() {
	case "up", "k":
		if w.selected > 0 {
			w.selected--
		}
	case "down", "j":
		if w.selected < len(w.words)-1 {
			w.selected++
		}
	case "d", "D":
		if len(w.words) > 0 {
			w.confirm = true
		}
	}
	return w, nil
}

func (w *WordsScreen) View(width, height int) string {
	if !w.loaded {
		return layout.Center(theme.Hint.Render("Loading..."), width, height)
	}
	if w.errMsg != "" {
		return layout.Center(theme.Incorrect.Render(w.errMsg), width, height)
	}
	if len(w.words) == 0 {
		return layout.Center(theme.Hint.Render("No words yet. Add some from the home menu."), width, height)
	}

	if w.confirm && w.selected < len(w.words) {
		card := theme.Card.Render(
			theme.Title.Render("Delete word?") + "\n\n" +
				theme.Body.Render(fmt.Sprintf("%q and its history will be removed.", w.words[w.selected].Text)) + "\n\n" +
				theme.Hint.Render("y: delete   n: cancel"))
		return layout.Center(card, width, height)
	}

	visible := height - 4
	if visible < 1 {
		visible = 1
	}
	if w.selected < w.offset {
		w.offset = w.selected
	}
	if w.selected >= w.offset+visible {
		w.offset = w.selected - visible + 1
	}

	var body string
	end := w.offset + visible
	if end > len(w.words) {
		end = len(w.words)
	}
	for i := w.offset; i < end; i++ {
		body += w.renderRow(i, width-24) + "\n"
	}

	header := theme.Subtitle.Render(fmt.Sprintf("%d words", len(w.words)))
	content := header + "\n\n" + theme.Card.Width(width-16).Render(body)
	return layout.Center(content, width, height)
}

func (w *WordsScreen) renderRow(i, maxWidth int) string {
	word := w.words[i]

	accuracy := "—"
	if word.Stats.Attempts() > 0 {
		accuracy = fmt.Sprintf("%.0f%%", word.Stats.Accuracy()*100)
	}

	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(word.Text)
	def := word.Definition
	if maxWidth > 20 && len(def) > maxWidth-20 {
		def = def[:maxWidth-20] + "…"
	}
	line := fmt.Sprintf("%s  %s  %s",
		name,
		theme.Hint.Render(def),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(accuracy))

	if i == w.selected {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("▸ ") + line
	}
	return "  " + line
}
