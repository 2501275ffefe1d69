// Package quiz is the interactive quiz screen: mode selection, question
// loop, per-answer feedback, and the end-of-session summary.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/quizgen"
	"github.com/arnav/wordwise/internal/screen"
	"github.com/arnav/wordwise/internal/session"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/ui/components"
	"github.com/arnav/wordwise/internal/ui/layout"
)

// QuizScreen implements screen.Screen for quiz sessions.
type QuizScreen struct {
	ctrl   *session.Controller
	grader *grader.Client
	events store.EventRepo
	log    zerolog.Logger

	modeMenu    components.Menu
	mc          components.MultiChoice
	input       components.TextInput
	gradeCh     chan tea.Msg
	quitConfirm bool
	saved       bool
	errMsg      string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.EscHandler = (*QuizScreen)(nil)

// New creates a new QuizScreen with injected dependencies.
func New(ctrl *session.Controller, gradeClient *grader.Client, events store.EventRepo, log zerolog.Logger) *QuizScreen {
	s := &QuizScreen{
		ctrl:   ctrl,
		grader: gradeClient,
		events: events,
		log:    log,
	}
	s.modeMenu = buildModeMenu()
	return s
}

func buildModeMenu() components.Menu {
	items := make([]components.MenuItem, 0, len(quizgen.AllModes()))
	for _, m := range quizgen.AllModes() {
		mode := m
		items = append(items, components.MenuItem{
			Label: mode.Label(),
			Action: func() tea.Cmd {
				return func() tea.Msg { return modeChosenMsg{Mode: mode} }
			},
		})
	}
	return components.NewMenu(items)
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// HandlesEsc keeps the quit confirmation inside the screen while a
// session is running.
func (s *QuizScreen) HandlesEsc() bool {
	st := s.ctrl.State()
	return st == session.StatePlaying || st == session.StateFeedback
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.quitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.ctrl.State() {
	case session.StateMenu:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case session.StatePlaying:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Quit session"},
		}
	case session.StateFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit session"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to menu"},
		}
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case modeChosenMsg:
		return s.handleModeChosen(msg.Mode)

	case gradeVerdictMsg:
		s.ctrl.ApplyVerdict(msg.Ticket, msg.Correct)
		return s, s.nextGradeEvent()

	case gradeChunkMsg:
		s.ctrl.AppendChunk(msg.Ticket, msg.Chunk)
		return s, s.nextGradeEvent()

	case gradeDoneMsg:
		s.ctrl.Resolve(context.Background(), msg.Ticket, msg.Result)
		return s, s.nextGradeEvent()

	case gradeStreamClosedMsg:
		s.gradeCh = nil
		return s, nil

	case sessionSavedMsg:
		if msg.Err != nil {
			s.log.Warn().Err(msg.Err).Msg("saving session record")
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.ctrl.State() == session.StatePlaying && !s.ctrl.Mode().MultipleChoice() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	return s, nil
}

func (s *QuizScreen) handleModeChosen(mode quizgen.Mode) (screen.Screen, tea.Cmd) {
	if err := s.ctrl.Start(context.Background(), mode); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.saved = false
	return s, s.prepareQuestion()
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.quitConfirm {
		switch key {
		case "y", "Y":
			s.quitConfirm = false
			s.ctrl.Exit()
		case "n", "N", "esc":
			s.quitConfirm = false
		}
		return s, nil
	}

	switch s.ctrl.State() {
	case session.StateMenu:
		if s.errMsg != "" {
			s.errMsg = ""
		}
		var cmd tea.Cmd
		s.modeMenu, cmd = s.modeMenu.Update(msg)
		return s, cmd

	case session.StatePlaying:
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		return s.handleAnswerKey(msg)

	case session.StateFeedback:
		if key == "esc" {
			s.quitConfirm = true
			return s, nil
		}
		if key == "enter" {
			return s.handleAdvance()
		}
		return s, nil

	case session.StateFinished:
		if key == "enter" {
			s.ctrl.Exit()
			s.modeMenu = buildModeMenu()
		}
		return s, nil
	}

	return s, nil
}

func (s *QuizScreen) handleAnswerKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.ctrl.Current()
	mode := s.ctrl.Mode()

	if mode.MultipleChoice() {
		var cmd tea.Cmd
		s.mc, cmd = s.mc.Update(msg)
		if !s.mc.Submitted {
			return s, cmd
		}
		choice := &q.Options[s.mc.ChosenIndex]
		if _, err := s.ctrl.Submit(context.Background(), quizgen.Answer{Choice: choice}); err != nil {
			s.errMsg = err.Error()
		}
		return s, cmd
	}

	if msg.String() != "enter" {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	text := strings.TrimSpace(s.input.Value())
	if text == "" {
		return s, nil
	}

	out, err := s.ctrl.Submit(context.Background(), quizgen.Answer{Text: text})
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if mode == quizgen.ModeWritten {
		s.input.Submit(out.Correct)
		return s, nil
	}
	return s, s.startGrading(out.Ticket, q.Target.Text, q.Target.Definition, text)
}

func (s *QuizScreen) handleAdvance() (screen.Screen, tea.Cmd) {
	if err := s.ctrl.Advance(); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if s.ctrl.State() == session.StateFinished {
		return s, s.saveSession()
	}
	return s, s.prepareQuestion()
}

// prepareQuestion builds the input widget for the current question.
func (s *QuizScreen) prepareQuestion() tea.Cmd {
	q := s.ctrl.Current()
	mode := s.ctrl.Mode()

	if mode.MultipleChoice() {
		prompt, options := questionStrings(q, mode)
		correct := 0
		for i := range q.Options {
			if q.Options[i].ID == q.Target.ID {
				correct = i
				break
			}
		}
		s.mc = components.NewMultiChoice(prompt, options, correct)
		return nil
	}

	placeholder := "Type the word..."
	limit := 60
	if mode == quizgen.ModeSentence {
		placeholder = "Write your sentence..."
		limit = 200
	}
	s.input = components.NewTextInput(placeholder, limit)
	return s.input.Init()
}

// questionStrings derives the prompt and option labels for the
// multiple-choice modes.
func questionStrings(q *quizgen.Question, mode quizgen.Mode) (string, []string) {
	options := make([]string, len(q.Options))
	if mode == quizgen.ModeMCDef {
		for i, opt := range q.Options {
			options[i] = opt.Text
		}
		return fmt.Sprintf("Which word means: %s", q.Target.Definition), options
	}
	for i, opt := range q.Options {
		options[i] = opt.Definition
	}
	return fmt.Sprintf("What does %q mean?", q.Target.Text), options
}

// startGrading runs the grading call in the background and pumps its
// callbacks into the update loop as messages.
func (s *QuizScreen) startGrading(ticket session.Ticket, word, definition, sentence string) tea.Cmd {
	ch := make(chan tea.Msg, 512)
	s.gradeCh = ch

	go func() {
		result := s.grader.Evaluate(context.Background(), word, definition, sentence,
			func(chunk string) { ch <- gradeChunkMsg{Ticket: ticket, Chunk: chunk} },
			func(correct bool) { ch <- gradeVerdictMsg{Ticket: ticket, Correct: correct} },
		)
		ch <- gradeDoneMsg{Ticket: ticket, Result: result}
		close(ch)
	}()

	return s.nextGradeEvent()
}

// nextGradeEvent waits for the next message from the grading goroutine.
func (s *QuizScreen) nextGradeEvent() tea.Cmd {
	ch := s.gradeCh
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return gradeStreamClosedMsg{}
		}
		return msg
	}
}

// saveSession persists the finished session to the history.
func (s *QuizScreen) saveSession() tea.Cmd {
	if s.events == nil || s.saved {
		return nil
	}
	s.saved = true

	rec := store.SessionRecord{
		ID:         s.ctrl.SessionID(),
		Mode:       string(s.ctrl.Mode()),
		Score:      s.ctrl.Score(),
		Total:      s.ctrl.Total(),
		StartedAt:  s.ctrl.StartedAt(),
		FinishedAt: time.Now().UTC(),
	}
	return func() tea.Msg {
		return sessionSavedMsg{Err: s.events.AppendSession(context.Background(), rec)}
	}
}
