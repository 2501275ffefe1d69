package quiz

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/arnav/wordwise/internal/quizgen"
	"github.com/arnav/wordwise/internal/session"
	"github.com/arnav/wordwise/internal/ui/layout"
	"github.com/arnav/wordwise/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.quitConfirm {
		return s.renderQuitConfirm(width, height)
	}

	switch s.ctrl.State() {
	case session.StateMenu:
		return s.renderModeMenu(width, height)
	case session.StatePlaying:
		return s.renderQuestion(width, height)
	case session.StateFeedback:
		return s.renderFeedback(width, height)
	case session.StateFinished:
		return s.renderSummary(width, height)
	}
	return ""
}

func (s *QuizScreen) renderQuitConfirm(width, height int) string {
	card := theme.Card.Render(
		theme.Title.Render("End this session?") + "\n\n" +
			theme.Body.Render("Your progress so far will not be saved.") + "\n\n" +
			theme.Hint.Render("y: end session   n: keep going"))
	return layout.Center(card, width, height)
}

func (s *QuizScreen) renderModeMenu(width, height int) string {
	content := theme.Title.Render("Pick a quiz mode") + "\n\n" + s.modeMenu.View()
	if s.errMsg != "" {
		content += "\n" + theme.Incorrect.Render(s.errMsg)
	}
	return layout.Center(content, width, height)
}

func (s *QuizScreen) progressLine() string {
	asked := s.ctrl.Total() - s.ctrl.Remaining()
	return theme.Subtitle.Render(fmt.Sprintf(
		"Question %d of %d   ·   Score %d", asked, s.ctrl.Total(), s.ctrl.Score()))
}

func (s *QuizScreen) renderQuestion(width, height int) string {
	q := s.ctrl.Current()
	mode := s.ctrl.Mode()

	var body string
	switch {
	case mode.MultipleChoice():
		body = s.mc.View()
	case mode == quizgen.ModeSentence:
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
			fmt.Sprintf("Write a sentence using %q", q.Target.Text))
		definition := theme.Hint.Render(q.Target.Definition)
		body = prompt + "\n" + definition + "\n\n" + s.input.View()
	default:
		prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
			"Which word matches this definition?")
		definition := theme.Body.Render(q.Target.Definition)
		body = prompt + "\n\n" + definition + "\n\n" + s.input.View()
	}

	content := s.progressLine() + "\n\n" + theme.Card.Width(contentWidth(width)).Render(body)
	return layout.Center(content, width, height)
}

func (s *QuizScreen) renderFeedback(width, height int) string {
	q := s.ctrl.Current()
	mode := s.ctrl.Mode()
	fb := s.ctrl.Feedback()

	var body string
	if mode.MultipleChoice() {
		body = s.mc.View() + "\n" + renderVerdictLine(fb)
	} else if mode == quizgen.ModeSentence {
		body = renderGradedFeedback(q.Target.Text, fb, s.ctrl.GradingPending())
	} else {
		body = s.input.View() + "\n\n" + renderVerdictLine(fb)
	}

	content := s.progressLine() + "\n\n" + theme.Card.Width(contentWidth(width)).Render(body)
	return layout.Center(content, width, height)
}

func renderVerdictLine(fb *session.Feedback) string {
	if fb == nil {
		return ""
	}
	if fb.Correct {
		return theme.Correct.Render(fb.Message)
	}
	return theme.Incorrect.Render(fb.Message)
}

func renderGradedFeedback(word string, fb *session.Feedback, pending bool) string {
	header := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(
		fmt.Sprintf("Your sentence with %q", word))

	var verdict string
	switch {
	case !fb.Graded:
		verdict = theme.Hint.Render("Grading...")
	case fb.Correct:
		verdict = theme.Correct.Render("Correct!")
	default:
		verdict = theme.Incorrect.Render("Not quite.")
	}

	body := header + "\n\n" + verdict
	if fb.Stream != "" {
		body += "\n\n" + theme.Body.Render(fb.Stream)
	}
	if pending {
		body += lipgloss.NewStyle().Foreground(theme.Accent).Render("▌")
	}
	return body
}

func (s *QuizScreen) renderSummary(width, height int) string {
	score, total := s.ctrl.Score(), s.ctrl.Total()
	pct := 0
	if total > 0 {
		pct = score * 100 / total
	}

	verdict := "Keep practicing!"
	switch {
	case pct == 100:
		verdict = "Perfect round!"
	case pct >= 60:
		verdict = "Nice work!"
	}

	card := theme.Card.Render(
		theme.Title.Render("Session complete") + "\n\n" +
			theme.Body.Render(fmt.Sprintf("Score: %d / %d  (%d%%)", score, total, pct)) + "\n" +
			theme.Subtitle.Render(verdict) + "\n\n" +
			theme.Hint.Render("Enter: back to menu"))
	return layout.Center(card, width, height)
}

func contentWidth(width int) int {
	w := width - 20
	if w < 40 {
		w = width - 4
	}
	if w < 10 {
		w = 10
	}
	return w
}
