package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/llm"
	"github.com/arnav/wordwise/internal/quizgen"
	"github.com/arnav/wordwise/internal/screen"
	"github.com/arnav/wordwise/internal/session"
	"github.com/arnav/wordwise/internal/store"
	"github.com/arnav/wordwise/internal/vocab"
)

// mockWordStore implements session.WordStore for testing.
type mockWordStore struct {
	words []vocab.Word
}

func (m *mockWordStore) List(_ context.Context) ([]vocab.Word, error) {
	out := make([]vocab.Word, len(m.words))
	copy(out, m.words)
	return out, nil
}

func (m *mockWordStore) RecordAttempt(ctx context.Context, wordID string, correct bool) ([]vocab.Word, error) {
	for i := range m.words {
		if m.words[i].ID == wordID {
			if correct {
				m.words[i].Stats.Correct++
			} else {
				m.words[i].Stats.Incorrect++
			}
		}
	}
	return m.List(ctx)
}

// mockEventRepo implements store.EventRepo for testing.
type mockEventRepo struct {
	sessions []store.SessionRecord
}

func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ llm.RequestLogEntry) error { return nil }
func (m *mockEventRepo) ListLLMRequests(_ context.Context, _ int) ([]store.LLMRequest, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMRequest(_ context.Context, _ int64) (*store.LLMRequest, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendSession(_ context.Context, rec store.SessionRecord) error {
	m.sessions = append(m.sessions, rec)
	return nil
}
func (m *mockEventRepo) ListSessions(_ context.Context, _ int) ([]store.SessionRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) SessionStats(_ context.Context) (store.SessionStats, error) {
	return store.SessionStats{}, nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testWords(n int) []vocab.Word {
	words := make([]vocab.Word, n)
	for i := range words {
		words[i] = vocab.Word{
			ID:         fmt.Sprintf("w%d", i),
			Text:       fmt.Sprintf("Word%d", i),
			Definition: fmt.Sprintf("definition %d", i),
		}
	}
	return words
}

func testQuizScreen(n int) (*QuizScreen, *mockEventRepo) {
	ctrl := session.NewController(
		&mockWordStore{words: testWords(n)},
		rand.New(rand.NewPCG(3, 5)),
		zerolog.Nop(),
	)
	events := &mockEventRepo{}
	gradeClient := grader.New(nil, grader.DefaultConfig(), zerolog.Nop())
	return New(ctrl, gradeClient, events, zerolog.Nop()), events
}

func TestQuizScreen_Title(t *testing.T) {
	s, _ := testQuizScreen(5)
	if s.Title() != "Quiz" {
		t.Errorf("Title = %q, want %q", s.Title(), "Quiz")
	}
}

func TestQuizScreen_ViewModeMenu(t *testing.T) {
	s, _ := testQuizScreen(5)
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty mode menu view")
	}
}

func TestQuizScreen_InsufficientWords(t *testing.T) {
	s, _ := testQuizScreen(2)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeMCDef})
	qs := scr.(*QuizScreen)

	if qs.errMsg == "" {
		t.Error("expected error message for too few words")
	}
	if qs.ctrl.State() != session.StateMenu {
		t.Errorf("state = %s, want menu", qs.ctrl.State())
	}
}

func TestQuizScreen_StartSession(t *testing.T) {
	s, _ := testQuizScreen(5)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeMCDef})
	qs := scr.(*QuizScreen)

	if qs.ctrl.State() != session.StatePlaying {
		t.Fatalf("state = %s, want playing", qs.ctrl.State())
	}
	if len(qs.mc.Options) != quizgen.OptionCount {
		t.Errorf("mc options = %d, want %d", len(qs.mc.Options), quizgen.OptionCount)
	}
	view := s.View(80, 24)
	if view == "" {
		t.Error("expected non-empty question view")
	}
}

func TestQuizScreen_MultipleChoiceAnswer(t *testing.T) {
	s, _ := testQuizScreen(5)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeMCDef})
	qs := scr.(*QuizScreen)

	// Move selection onto the correct option, then submit.
	for qs.mc.Selected != qs.mc.CorrectIndex {
		if qs.mc.Selected < qs.mc.CorrectIndex {
			scr, _ = scr.Update(keyPress('j'))
		} else {
			scr, _ = scr.Update(keyPress('k'))
		}
		qs = scr.(*QuizScreen)
	}
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	qs = scr.(*QuizScreen)

	if qs.ctrl.State() != session.StateFeedback {
		t.Fatalf("state = %s, want feedback", qs.ctrl.State())
	}
	if qs.ctrl.Score() != 1 {
		t.Errorf("score = %d, want 1", qs.ctrl.Score())
	}
	if !qs.mc.IsCorrect() {
		t.Error("expected correct choice")
	}
}

func TestQuizScreen_AdvanceThroughSession(t *testing.T) {
	s, events := testQuizScreen(4)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeMCWord})

	for i := 0; i < 4; i++ {
		qs := scr.(*QuizScreen)
		if qs.ctrl.State() != session.StatePlaying {
			t.Fatalf("question %d: state = %s", i, qs.ctrl.State())
		}
		scr, _ = scr.Update(specialKey(tea.KeyEnter)) // submit whatever is selected
		var cmd tea.Cmd
		scr, cmd = scr.Update(specialKey(tea.KeyEnter)) // advance
		qs = scr.(*QuizScreen)
		if i == 3 {
			if qs.ctrl.State() != session.StateFinished {
				t.Fatalf("state = %s, want finished", qs.ctrl.State())
			}
			// Final advance returns the save command.
			if cmd == nil {
				t.Fatal("expected save command at session end")
			}
			if msg := cmd(); msg != nil {
				scr, _ = scr.Update(msg)
			}
		}
	}

	if len(events.sessions) != 1 {
		t.Fatalf("saved sessions = %d, want 1", len(events.sessions))
	}
	rec := events.sessions[0]
	if rec.Total != 4 || rec.Mode != string(quizgen.ModeMCWord) {
		t.Errorf("record = %+v", rec)
	}
}

func TestQuizScreen_SentenceGradingWithoutCredentials(t *testing.T) {
	s, _ := testQuizScreen(1)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeSentence})
	qs := scr.(*QuizScreen)

	qs.input.Model.SetValue("An example sentence.")
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	qs = scr.(*QuizScreen)

	if qs.ctrl.State() != session.StateFeedback {
		t.Fatalf("state = %s, want feedback", qs.ctrl.State())
	}
	if !qs.ctrl.GradingPending() {
		t.Fatal("expected pending grade")
	}

	// Pump grading messages until the stream closes. The nil-provider
	// grader resolves immediately with the missing-credential notice.
	for cmd != nil {
		msg := cmd()
		if msg == nil {
			break
		}
		scr, cmd = scr.Update(msg)
	}
	qs = scr.(*QuizScreen)

	if qs.ctrl.GradingPending() {
		t.Error("grade still pending after stream closed")
	}
	fb := qs.ctrl.Feedback()
	if fb == nil || !fb.Graded || fb.Correct {
		t.Errorf("feedback = %+v, want graded incorrect", fb)
	}
	if fb.Stream != grader.MissingKeyFeedback {
		t.Errorf("stream = %q, want missing-credential notice", fb.Stream)
	}
}

func TestQuizScreen_StaleGradeIgnoredAfterQuit(t *testing.T) {
	s, _ := testQuizScreen(1)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeSentence})
	qs := scr.(*QuizScreen)

	qs.input.Model.SetValue("Another sentence.")
	scr, _ = scr.Update(specialKey(tea.KeyEnter))
	qs = scr.(*QuizScreen)

	// Quit the session before the grade lands.
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	scr, _ = scr.Update(keyPress('y'))
	qs = scr.(*QuizScreen)

	if qs.ctrl.State() != session.StateMenu {
		t.Fatalf("state = %s, want menu", qs.ctrl.State())
	}
	if qs.ctrl.Score() != 0 {
		t.Errorf("score = %d after quit", qs.ctrl.Score())
	}
}

func TestQuizScreen_QuitConfirmDismiss(t *testing.T) {
	s, _ := testQuizScreen(5)

	var scr screen.Screen = s
	scr, _ = scr.Update(modeChosenMsg{Mode: quizgen.ModeWritten})
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	qs := scr.(*QuizScreen)
	if !qs.quitConfirm {
		t.Fatal("expected quit confirmation")
	}

	scr, _ = scr.Update(keyPress('n'))
	qs = scr.(*QuizScreen)
	if qs.quitConfirm {
		t.Error("expected confirmation dismissed")
	}
	if qs.ctrl.State() != session.StatePlaying {
		t.Errorf("state = %s, want playing", qs.ctrl.State())
	}
}

func TestQuizScreen_KeyHints(t *testing.T) {
	s, _ := testQuizScreen(5)
	if len(s.KeyHints()) == 0 {
		t.Error("expected non-empty key hints")
	}
}
