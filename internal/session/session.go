// Package session runs a quiz session as an explicit state machine:
// menu, playing, feedback, finished. The controller owns the question
// queue, the score, and the guard that keeps late grading results from
// touching a session that has already moved on.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/grader"
	"github.com/arnav/wordwise/internal/quizgen"
	"github.com/arnav/wordwise/internal/vocab"
)

var (
	// ErrNotPlaying is returned when a submission arrives outside StatePlaying.
	ErrNotPlaying = errors.New("session: no question awaiting an answer")

	// ErrNotFeedback is returned when advance is called outside StateFeedback.
	ErrNotFeedback = errors.New("session: nothing to advance from")
)

// InsufficientWordsError reports that the vocabulary is too small for the
// requested mode. Multiple-choice modes need enough words to fill the
// option set; the other modes need at least one.
type InsufficientWordsError struct {
	Mode quizgen.Mode
	Need int
	Have int
}

func (e *InsufficientWordsError) Error() string {
	return fmt.Sprintf("session: %s mode needs at least %d words, have %d", e.Mode, e.Need, e.Have)
}

// WordStore supplies the vocabulary and persists per-word attempt stats.
// RecordAttempt returns the refreshed word list so distractors for later
// questions draw from up-to-date stats.
type WordStore interface {
	List(ctx context.Context) ([]vocab.Word, error)
	RecordAttempt(ctx context.Context, wordID string, correct bool) ([]vocab.Word, error)
}

// Controller drives one user through quiz sessions. It is not safe for
// concurrent use; the TUI calls it from its single update loop.
type Controller struct {
	store WordStore
	rng   *rand.Rand
	log   zerolog.Logger

	state     State
	mode      quizgen.Mode
	sessionID string
	startedAt time.Time

	words    []vocab.Word
	queue    []vocab.Word
	current  *quizgen.Question
	feedback *Feedback

	score int
	total int

	// gen bumps on every transition that invalidates in-flight grading.
	gen     uint64
	pending bool
}

// NewController wires a controller in StateMenu. A nil rng gets a
// time-seeded one; tests pass their own for determinism.
func NewController(store WordStore, rng *rand.Rand, log zerolog.Logger) *Controller {
	if rng == nil {
		now := time.Now()
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(now.Unix())))
	}
	return &Controller{store: store, rng: rng, log: log, state: StateMenu}
}

func (c *Controller) State() State               { return c.state }
func (c *Controller) Mode() quizgen.Mode         { return c.mode }
func (c *Controller) SessionID() string          { return c.sessionID }
func (c *Controller) StartedAt() time.Time       { return c.startedAt }
func (c *Controller) Score() int                 { return c.score }
func (c *Controller) Total() int                 { return c.total }
func (c *Controller) Remaining() int             { return len(c.queue) }
func (c *Controller) Current() *quizgen.Question { return c.current }
func (c *Controller) Feedback() *Feedback        { return c.feedback }

// GradingPending reports whether a sentence-mode verdict is still
// outstanding for the feedback on screen.
func (c *Controller) GradingPending() bool { return c.pending }

// Start begins a session in the given mode. It snapshots the vocabulary,
// shuffles it into a queue without replacement, and puts the first
// question on screen. Valid from any state; an in-flight grading call is
// orphaned.
func (c *Controller) Start(ctx context.Context, mode quizgen.Mode) error {
	words, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("loading words: %w", err)
	}
	if need := mode.MinWords(); len(words) < need {
		return &InsufficientWordsError{Mode: mode, Need: need, Have: len(words)}
	}

	c.gen++
	c.pending = false
	c.mode = mode
	c.sessionID = uuid.New().String()
	c.startedAt = time.Now()
	c.words = words
	c.queue = quizgen.ShuffleWords(words, c.rng)
	c.total = len(c.queue)
	c.score = 0
	c.feedback = nil

	q, rest, err := quizgen.Next(c.queue, c.words, mode, c.rng)
	if err != nil {
		return err
	}
	c.current = q
	c.queue = rest
	c.state = StatePlaying

	c.log.Debug().
		Str("session_id", c.sessionID).
		Str("mode", string(mode)).
		Int("words", c.total).
		Msg("session started")
	return nil
}

// Submit evaluates an answer to the current question. Written and
// multiple-choice modes resolve immediately: the score and per-word
// stats update, and the outcome carries the feedback line. Sentence mode
// transitions to feedback with a pending grade and returns the ticket
// that Resolve, ApplyVerdict and AppendChunk must present.
func (c *Controller) Submit(ctx context.Context, ans quizgen.Answer) (*Outcome, error) {
	if c.state != StatePlaying {
		return nil, fmt.Errorf("%w (state %s)", ErrNotPlaying, c.state)
	}

	if c.mode == quizgen.ModeSentence {
		c.state = StateFeedback
		c.pending = true
		c.feedback = &Feedback{}
		return &Outcome{Pending: true, Ticket: Ticket{gen: c.gen}}, nil
	}

	correct := quizgen.CheckAnswer(ans, c.current, c.mode)
	c.applyResult(ctx, correct)

	msg := fmt.Sprintf("Wrong! It was %q.", c.current.Target.Text)
	if correct {
		msg = "Correct!"
	}
	c.state = StateFeedback
	c.feedback = &Feedback{Graded: true, Correct: correct, Message: msg}
	return &Outcome{Correct: correct, Message: msg}, nil
}

// ApplyVerdict records the grading verdict for display. It fires before
// the feedback chunks start streaming. A stale ticket is a no-op.
func (c *Controller) ApplyVerdict(t Ticket, correct bool) bool {
	if !c.ticketLive(t) {
		return false
	}
	c.feedback.Graded = true
	c.feedback.Correct = correct
	return true
}

// AppendChunk appends one streamed feedback chunk. A stale ticket is a
// no-op.
func (c *Controller) AppendChunk(t Ticket, chunk string) bool {
	if !c.ticketLive(t) {
		return false
	}
	c.feedback.Stream += chunk
	return true
}

// Resolve applies the final grading result: score and word stats update
// exactly once, and the pending flag clears. A stale ticket is a no-op.
func (c *Controller) Resolve(ctx context.Context, t Ticket, res grader.Result) bool {
	if !c.ticketLive(t) {
		return false
	}
	c.pending = false
	c.feedback.Graded = true
	c.feedback.Correct = res.Correct
	c.applyResult(ctx, res.Correct)
	return true
}

func (c *Controller) ticketLive(t Ticket) bool {
	return t.gen == c.gen && c.state == StateFeedback && c.feedback != nil
}

// Advance moves past the feedback screen: to the next question, or to
// the summary when the queue is empty. Advancing while a grade is still
// pending abandons it; the late result is discarded.
func (c *Controller) Advance() error {
	if c.state != StateFeedback {
		return fmt.Errorf("%w (state %s)", ErrNotFeedback, c.state)
	}
	c.gen++
	c.pending = false
	c.feedback = nil

	if len(c.queue) == 0 {
		c.current = nil
		c.state = StateFinished
		c.log.Debug().
			Str("session_id", c.sessionID).
			Int("score", c.score).
			Int("total", c.total).
			Msg("session finished")
		return nil
	}

	q, rest, err := quizgen.Next(c.queue, c.words, c.mode, c.rng)
	if err != nil {
		return err
	}
	c.current = q
	c.queue = rest
	c.state = StatePlaying
	return nil
}

// Exit abandons whatever is running and returns to the menu. Any
// in-flight grading result is discarded.
func (c *Controller) Exit() {
	c.gen++
	c.pending = false
	c.state = StateMenu
	c.current = nil
	c.feedback = nil
	c.queue = nil
}

func (c *Controller) applyResult(ctx context.Context, correct bool) {
	if correct {
		c.score++
	}
	updated, err := c.store.RecordAttempt(ctx, c.current.Target.ID, correct)
	if err != nil {
		c.log.Warn().Err(err).Str("word_id", c.current.Target.ID).Msg("recording attempt")
		return
	}
	c.words = updated
}
