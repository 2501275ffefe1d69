package session

// State is the controller's position in the session lifecycle.
type State int

const (
	// StateMenu — no session running; mode selection is shown.
	StateMenu State = iota

	// StatePlaying — a question is on screen awaiting an answer.
	StatePlaying

	// StateFeedback — the answer's feedback is shown (possibly still
	// streaming for sentence mode).
	StateFeedback

	// StateFinished — the queue is exhausted; the summary is shown.
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateFeedback:
		return "feedback"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Feedback is what the UI shows after a submission. For sentence mode it
// starts ungraded and fills in as the grading call streams back.
type Feedback struct {
	// Graded is false while a sentence-mode verdict is still outstanding.
	Graded bool

	// Correct is meaningful only once Graded is true.
	Correct bool

	// Message is the static feedback line for the synchronous modes.
	Message string

	// Stream accumulates streamed grading feedback, chunk by chunk.
	Stream string
}

// Ticket identifies one in-flight grading call. Results carrying a stale
// ticket are discarded, so a session that has advanced or exited can
// never be mutated by a late arrival.
type Ticket struct {
	gen uint64
}

// Outcome is the immediate result of a submission. Synchronous modes
// resolve on the spot; sentence mode returns Pending with the Ticket the
// grading callbacks must present.
type Outcome struct {
	Pending bool
	Correct bool
	Message string
	Ticket  Ticket
}
