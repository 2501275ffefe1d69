package quiz

import (
	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/quizgen"
	"github.com/arnav/wordwise/internal/session"
)

// modeChosenMsg is sent when a quiz mode is picked from the menu.
type modeChosenMsg struct {
	Mode quizgen.Mode
}

// gradeVerdictMsg carries the grading verdict. It arrives before the
// first feedback chunk.
type gradeVerdictMsg struct {
	Ticket  session.Ticket
	Correct bool
}

// gradeChunkMsg carries one streamed chunk of grading feedback.
type gradeChunkMsg struct {
	Ticket session.Ticket
	Chunk  string
}

// gradeDoneMsg is sent when the grading call has fully resolved.
type gradeDoneMsg struct {
	Ticket session.Ticket
	Result grader.Result
}

// gradeStreamClosedMsg is sent when the grading event channel drains.
type gradeStreamClosedMsg struct{}

// sessionSavedMsg confirms the session record was persisted.
type sessionSavedMsg struct {
	Err error
}
