// Package home is the landing screen: vocabulary stats and the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/dict"
	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/router"
	"github.com/arnav/wordwise/internal/screen"
	"github.com/arnav/wordwise/internal/screens/addword"
	"github.com/arnav/wordwise/internal/screens/quiz"
	"github.com/arnav/wordwise/internal/screens/words"
	"github.com/arnav/wordwise/internal/session"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/suggest"
	"github.com/arnav/wordwise/internal/ui/components"
	"github.com/arnav/wordwise/internal/ui/theme"
)

// HomeScreen is the main screen of the application.
type HomeScreen struct {
	menu       components.Menu
	wordCount  int
	sessions   int
	bestScore  int
	bestTotal  int
	accuracy   float64
	hasHistory bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. Stats are loaded up front so the menu
// shows current numbers every time the user lands here.
func New(ctrl *session.Controller, gradeClient *grader.Client, wordRepo store.WordRepo, events store.EventRepo, dictClient *dict.Client, suggestSvc *suggest.Service, log zerolog.Logger) *HomeScreen {
	h := &HomeScreen{}
	h.loadStats(wordRepo, events, log)

	items := []components.MenuItem{
		{Label: "START QUIZ", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(ctrl, gradeClient, events, log)}
			}
		}},
		{Label: "ADD WORD", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: addword.New(wordRepo, dictClient, suggestSvc, log)}
			}
		}},
		{Label: "WORD LIST", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: words.New(wordRepo, log)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) loadStats(wordRepo store.WordRepo, events store.EventRepo, log zerolog.Logger) {
	ctx := context.Background()

	if wordRepo != nil {
		list, err := wordRepo.List(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("loading words for home stats")
		} else {
			h.wordCount = len(list)
			var correct, attempts int
			for _, w := range list {
				correct += w.Stats.Correct
				attempts += w.Stats.Attempts()
			}
			if attempts > 0 {
				h.accuracy = float64(correct) / float64(attempts)
			}
		}
	}

	if events != nil {
		stats, err := events.SessionStats(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("loading session stats")
			return
		}
		h.sessions = stats.Sessions
		h.bestScore = stats.BestScore
		h.bestTotal = stats.BestTotal
		h.hasHistory = stats.Sessions > 0
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	title := theme.Title.Render("W O R D W I S E")
	subtitle := theme.Subtitle.Render("grow your vocabulary, one quiz at a time")

	sections := []string{
		title + "\n" + subtitle,
		h.renderStatsBar(),
		theme.Card.Render(h.menu.View()),
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) renderStatsBar() string {
	stat := func(label, value string) string {
		return theme.Subtitle.Render(label) + " " +
			lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value)
	}

	parts := []string{
		stat("Words:", fmt.Sprintf("%d", h.wordCount)),
		stat("Sessions:", fmt.Sprintf("%d", h.sessions)),
	}
	if h.hasHistory {
		parts = append(parts,
			stat("Best:", fmt.Sprintf("%d/%d", h.bestScore, h.bestTotal)),
			stat("Accuracy:", fmt.Sprintf("%.0f%%", h.accuracy*100)),
		)
	}

	return theme.Card.Render(strings.Join(parts, "    "))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
