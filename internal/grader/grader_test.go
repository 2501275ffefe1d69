package grader

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arnav/wordwise/internal/llm"
)

func testConfig() Config {
	return Config{
		MaxAttempts: 3,
		BackoffUnit: 5 * time.Millisecond,
		ChunkSize:   5,
		ChunkDelay:  time.Millisecond,
		MaxTokens:   512,
	}
}

func nopLog() zerolog.Logger {
	return zerolog.Nop()
}

// recorder collects callback invocations in arrival order.
type recorder struct {
	chunks   []string
	verdicts []bool
	events   []string // "verdict" / "chunk", to assert ordering
}

func (r *recorder) onChunk(s string) {
	r.chunks = append(r.chunks, s)
	r.events = append(r.events, "chunk")
}

func (r *recorder) onVerdict(v bool) {
	r.verdicts = append(r.verdicts, v)
	r.events = append(r.events, "verdict")
}

func textResponse(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func TestEvaluate_MissingCredential(t *testing.T) {
	c := New(nil, testConfig(), nopLog())
	var rec recorder

	res := c.Evaluate(context.Background(), "Ephemeral", "lasting briefly", "anything", rec.onChunk, rec.onVerdict)

	if res.Correct {
		t.Error("expected incorrect result without a credential")
	}
	if res.Feedback != MissingKeyFeedback {
		t.Errorf("feedback = %q, want the missing-key message", res.Feedback)
	}
	if len(rec.verdicts) != 1 || rec.verdicts[0] {
		t.Errorf("verdicts = %v, want exactly one false", rec.verdicts)
	}
	if len(rec.chunks) != 1 || rec.chunks[0] != MissingKeyFeedback {
		t.Errorf("chunks = %v, want one missing-key chunk", rec.chunks)
	}
	if rec.events[0] != "verdict" {
		t.Errorf("events = %v, verdict must come first", rec.events)
	}
}

func TestEvaluate_ParsesVerdictAndStreamsChunks(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("VERDICT: CORRECT\nFEEDBACK: Great usage!"),
	)
	c := New(mock, testConfig(), nopLog())
	var rec recorder

	res := c.Evaluate(context.Background(), "Ephemeral", "lasting briefly", "The fad proved ephemeral.", rec.onChunk, rec.onVerdict)

	if !res.Correct {
		t.Error("expected correct verdict")
	}
	if res.Feedback != "Great usage!" {
		t.Errorf("feedback = %q, want %q", res.Feedback, "Great usage!")
	}

	if len(rec.verdicts) != 1 || !rec.verdicts[0] {
		t.Fatalf("verdicts = %v, want exactly one true", rec.verdicts)
	}
	if rec.events[0] != "verdict" {
		t.Errorf("events = %v, verdict must precede chunks", rec.events)
	}

	want := []string{"Great", " usag", "e!"}
	if len(rec.chunks) != len(want) {
		t.Fatalf("chunks = %v, want %v", rec.chunks, want)
	}
	for i := range want {
		if rec.chunks[i] != want[i] {
			t.Errorf("chunk[%d] = %q, want %q", i, rec.chunks[i], want[i])
		}
	}
	if strings.Join(rec.chunks, "") != "Great usage!" {
		t.Errorf("chunks do not concatenate to the feedback: %v", rec.chunks)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestEvaluate_CaseInsensitiveVerdict(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("verdict: correct\nfeedback: Nice."),
	)
	c := New(mock, testConfig(), nopLog())

	res := c.Evaluate(context.Background(), "w", "d", "s", nil, nil)
	if !res.Correct {
		t.Error("lowercase verdict should parse as correct")
	}
	if res.Feedback != "Nice." {
		t.Errorf("feedback = %q, want %q", res.Feedback, "Nice.")
	}
}

func TestEvaluate_MissingVerdictFailsSafe(t *testing.T) {
	mock := llm.NewMockProvider(
		textResponse("I think this sentence is fine."),
	)
	c := New(mock, testConfig(), nopLog())
	var rec recorder

	res := c.Evaluate(context.Background(), "w", "d", "s", rec.onChunk, rec.onVerdict)

	if res.Correct {
		t.Error("missing VERDICT must default to incorrect")
	}
	if res.Feedback != "I think this sentence is fine." {
		t.Errorf("feedback should fall back to raw text, got %q", res.Feedback)
	}
	if len(rec.verdicts) != 1 || rec.verdicts[0] {
		t.Errorf("verdicts = %v, want one false", rec.verdicts)
	}
}

func TestEvaluate_TransientThenSuccess(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503 overloaded")}},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503 overloaded")}},
		textResponse("VERDICT: CORRECT\nFEEDBACK: ok"),
	)
	cfg := testConfig()
	c := New(mock, cfg, nopLog())
	var rec recorder

	start := time.Now()
	res := c.Evaluate(context.Background(), "w", "d", "s", rec.onChunk, rec.onVerdict)
	elapsed := time.Since(start)

	if !res.Correct {
		t.Error("final result should reflect the successful attempt")
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}

	// Two backoff waits: 2 and 4 backoff units.
	wantMin := 6 * cfg.BackoffUnit
	if elapsed < wantMin {
		t.Errorf("elapsed = %v, want at least %v of backoff", elapsed, wantMin)
	}

	notices := 0
	for _, ch := range rec.chunks {
		if strings.Contains(ch, "retrying") {
			notices++
		}
	}
	if notices != 2 {
		t.Errorf("retry notices = %d, want 2", notices)
	}
}

func TestEvaluate_RetriesExhausted(t *testing.T) {
	overloaded := llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503 overloaded")}}
	mock := llm.NewMockProvider(overloaded, overloaded, overloaded, overloaded)
	c := New(mock, testConfig(), nopLog())
	var rec recorder

	res := c.Evaluate(context.Background(), "w", "d", "s", rec.onChunk, rec.onVerdict)

	if res.Correct {
		t.Error("exhausted retries must produce an incorrect result")
	}
	if res.Feedback != ApologyFeedback {
		t.Errorf("feedback = %q, want the apology", res.Feedback)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want exactly 3 (no further retries)", mock.CallCount())
	}
	if len(rec.verdicts) != 1 || rec.verdicts[0] {
		t.Errorf("verdicts = %v, want one false", rec.verdicts)
	}
}

func TestEvaluate_NonTransientNotRetried(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{}},
		textResponse("VERDICT: CORRECT\nFEEDBACK: unreachable"),
	)
	c := New(mock, testConfig(), nopLog())

	res := c.Evaluate(context.Background(), "w", "d", "s", nil, nil)

	if res.Correct {
		t.Error("non-transient failure must degrade to incorrect")
	}
	if res.Feedback != ApologyFeedback {
		t.Errorf("feedback = %q, want the apology", res.Feedback)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", mock.CallCount())
	}
}

func TestEvaluate_CancelledContextStopsEmission(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}},
	)
	c := New(mock, testConfig(), nopLog())

	ctx, cancel := context.WithCancel(context.Background())
	var rec recorder

	// Cancel from inside the retry-notice callback: the client must stop
	// without emitting a verdict or more chunks.
	res := c.Evaluate(ctx, "w", "d", "s", func(s string) {
		rec.onChunk(s)
		cancel()
	}, rec.onVerdict)

	if len(rec.verdicts) != 0 {
		t.Errorf("verdicts = %v, want none after cancellation", rec.verdicts)
	}
	if res.Correct || res.Feedback != "" {
		t.Errorf("result = %+v, want zero result after cancellation", res)
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantCorrect  bool
		wantFeedback string
	}{
		{"correct", "VERDICT: CORRECT\nFEEDBACK: Great usage!", true, "Great usage!"},
		{"incorrect", "VERDICT: INCORRECT\nFEEDBACK: Not quite.", false, "Not quite."},
		{"multiline feedback", "VERDICT: CORRECT\nFEEDBACK: line one\nline two", true, "line one\nline two"},
		{"no markers", "free form text", false, "free form text"},
		{"verdict only", "VERDICT: CORRECT", true, "VERDICT: CORRECT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseVerdict(tt.raw)
			if got.Correct != tt.wantCorrect {
				t.Errorf("correct = %v, want %v", got.Correct, tt.wantCorrect)
			}
			if got.Feedback != tt.wantFeedback {
				t.Errorf("feedback = %q, want %q", got.Feedback, tt.wantFeedback)
			}
		})
	}
}
