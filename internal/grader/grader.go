package grader

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/llm"
)

// Result is the outcome of grading one sentence. Immutable once returned.
type Result struct {
	Correct  bool
	Feedback string
}

// Feedback strings for the degraded paths. The client never returns an
// error; every failure resolves to a Result carrying one of these.
const (
	MissingKeyFeedback = "API key missing. Set GEMINI_API_KEY (or another provider key) to enable sentence grading."
	ApologyFeedback    = "Sorry, I couldn't evaluate that right now due to high server traffic. Please try again in a moment."
)

// Config tunes the grading protocol. Tests shrink the durations.
type Config struct {
	// MaxAttempts is the total number of request attempts, including the
	// first. Only transient failures consume extra attempts.
	MaxAttempts int

	// BackoffUnit scales the exponential backoff: the wait before retry
	// n is 2^n * BackoffUnit, so with a 1s unit the waits are 2s, 4s.
	BackoffUnit time.Duration

	// ChunkSize is the number of characters per feedback chunk.
	ChunkSize int

	// ChunkDelay is the pause between feedback chunks.
	ChunkDelay time.Duration

	// MaxTokens bounds the graded response.
	MaxTokens int
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BackoffUnit: 1 * time.Second,
		ChunkSize:   5,
		ChunkDelay:  10 * time.Millisecond,
		MaxTokens:   512,
	}
}

// Client grades sentence usage through a remote model. A nil provider
// means no credential is configured; grading then short-circuits with a
// deterministic failure result.
type Client struct {
	provider llm.Provider
	cfg      Config
	log      zerolog.Logger
}

// New creates a grading client. provider may be nil.
func New(provider llm.Provider, cfg Config, log zerolog.Logger) *Client {
	return &Client{provider: provider, cfg: cfg, log: log}
}

var (
	verdictRe  = regexp.MustCompile(`(?i)VERDICT:\s*(CORRECT|INCORRECT)`)
	feedbackRe = regexp.MustCompile(`(?is)FEEDBACK:(.*)`)
)

// Evaluate grades the learner's sentence for the given word. The verdict
// callback fires exactly once, before the first feedback chunk; feedback
// is then replayed to onChunk in fixed-size slices with a short delay
// between them. The full response is fetched before any chunk is emitted.
//
// Cancelling ctx is terminal: no further callbacks fire and the partial
// result is returned. Errors never propagate; transient failures are
// retried with exponential backoff (a retry notice goes to onChunk
// before each wait), and everything else degrades to a failure Result.
func (c *Client) Evaluate(ctx context.Context, word, definition, sentence string, onChunk func(string), onVerdict func(bool)) Result {
	if c.provider == nil {
		if onVerdict != nil {
			onVerdict(false)
		}
		if onChunk != nil {
			onChunk(MissingKeyFeedback)
		}
		return Result{Correct: false, Feedback: MissingKeyFeedback}
	}

	ctx = llm.WithPurpose(ctx, "grading")
	req := llm.Request{
		System:    gradingSystemPrompt,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: buildGradingPrompt(word, definition, sentence)}},
		MaxTokens: c.cfg.MaxTokens,
	}

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		resp, err := c.provider.Generate(ctx, req)
		if err == nil {
			result := parseVerdict(resp.Text())
			c.log.Debug().Bool("correct", result.Correct).Str("word", word).Msg("sentence graded")
			c.deliver(ctx, result, onChunk, onVerdict)
			return result
		}

		if ctx.Err() != nil {
			return Result{}
		}

		c.log.Warn().Err(err).Int("attempt", attempt).Msg("grading request failed")

		if isTransient(err) && attempt < c.cfg.MaxAttempts {
			wait := time.Duration(1<<attempt) * c.cfg.BackoffUnit
			if onChunk != nil {
				onChunk(fmt.Sprintf(" ... (server busy, retrying in %s) ... ", wait))
			}
			if !sleep(ctx, wait) {
				return Result{}
			}
			continue
		}

		// Non-transient, or retry budget exhausted.
		break
	}

	result := Result{Correct: false, Feedback: ApologyFeedback}
	if onVerdict != nil {
		onVerdict(false)
	}
	if onChunk != nil {
		onChunk(ApologyFeedback)
	}
	return result
}

// parseVerdict extracts the verdict and feedback from the raw response.
// A missing VERDICT line fails safe to incorrect; missing FEEDBACK falls
// back to the raw text.
func parseVerdict(raw string) Result {
	var result Result

	if m := verdictRe.FindStringSubmatch(raw); m != nil {
		result.Correct = strings.EqualFold(m[1], "CORRECT")
	}

	if m := feedbackRe.FindStringSubmatch(raw); m != nil {
		result.Feedback = strings.TrimSpace(m[1])
	} else {
		result.Feedback = strings.TrimSpace(raw)
	}

	return result
}

// deliver replays an already-complete result to the callbacks: verdict
// first, then feedback in ChunkSize slices with ChunkDelay pauses. This
// is presentation replay, not network streaming.
func (c *Client) deliver(ctx context.Context, result Result, onChunk func(string), onVerdict func(bool)) {
	if onVerdict != nil {
		onVerdict(result.Correct)
	}
	if onChunk == nil {
		return
	}

	runes := []rune(result.Feedback)
	for i := 0; i < len(runes); i += c.cfg.ChunkSize {
		end := i + c.cfg.ChunkSize
		if end > len(runes) {
			end = len(runes)
		}
		onChunk(string(runes[i:end]))

		if end < len(runes) && !sleep(ctx, c.cfg.ChunkDelay) {
			return
		}
	}
}

// isTransient reports whether the failure looks like a temporary service
// condition worth retrying.
func isTransient(err error) bool {
	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}
	var unavail *llm.ErrProviderUnavailable
	if errors.As(err, &unavail) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") || strings.Contains(msg, "overload")
}

// sleep waits for d or until ctx is cancelled. Returns false on cancel.
func sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
