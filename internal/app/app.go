// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/dict"
	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/router"
	"github.com/arnav/wordwise/internal/screen"
	"github.com/arnav/wordwise/internal/screens/home"
	"github.com/arnav/wordwise/internal/session"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/suggest"
	"github.com/arnav/wordwise/internal/ui/layout"
)

// Deps carries everything the screens need.
type Deps struct {
	Ctrl    *session.Controller
	Grader  *grader.Client
	Words   store.WordRepo
	Events  store.EventRepo
	Dict    *dict.Client
	Suggest *suggest.Service
	Log     zerolog.Logger
}

// wordCountMsg refreshes the header word count.
type wordCountMsg int

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps      Deps
	router    *router.Router
	width     int
	height    int
	wordCount int
}

func newAppModel(deps Deps) AppModel {
	return AppModel{
		deps:   deps,
		router: router.New(newHome(deps)),
	}
}

func newHome(deps Deps) screen.Screen {
	return home.New(deps.Ctrl, deps.Grader, deps.Words, deps.Events, deps.Dict, deps.Suggest, deps.Log)
}

func (m AppModel) Init() tea.Cmd {
	return m.countWords()
}

func (m AppModel) countWords() tea.Cmd {
	repo := m.deps.Words
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		list, err := repo.List(context.Background())
		if err != nil {
			return nil
		}
		return wordCountMsg(len(list))
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case wordCountMsg:
		m.wordCount = int(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, m.popToRefreshedScreen()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// popToRefreshedScreen pops the active screen and, when landing back on
// the root, rebuilds the home screen so its stats are current.
func (m AppModel) popToRefreshedScreen() tea.Cmd {
	m.router.Pop()
	var replaceCmd tea.Cmd
	if m.router.Depth() == 1 {
		replaceCmd = m.router.Replace(newHome(m.deps))
	}
	return tea.Batch(replaceCmd, m.countWords())
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.wordCount, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	}
	if len(footerHints) == 0 {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
