package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arnav/wordwise/internal/llm"
)

// ErrEventNotFound means no event with the given id exists.
var ErrEventNotFound = errors.New("store: event not found")

// SessionRecord captures one completed quiz session.
type SessionRecord struct {
	ID         string
	Mode       string
	Score      int
	Total      int
	StartedAt  time.Time
	FinishedAt time.Time
}

// LLMRequest is one persisted LLM call, as shown by `wordwise llm`.
type LLMRequest struct {
	ID        int64
	CreatedAt time.Time
	llm.RequestLogEntry
}

// SessionStats aggregates session history for the stats view.
type SessionStats struct {
	Sessions     int
	BestScore    int
	BestTotal    int
	LastPlayedAt time.Time
}

// EventRepo provides append and query access to session history and the
// LLM request log. It satisfies llm.RequestLog.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, entry llm.RequestLogEntry) error
	ListLLMRequests(ctx context.Context, limit int) ([]LLMRequest, error)
	GetLLMRequest(ctx context.Context, id int64) (*LLMRequest, error)

	AppendSession(ctx context.Context, rec SessionRecord) error
	ListSessions(ctx context.Context, limit int) ([]SessionRecord, error)
	SessionStats(ctx context.Context) (SessionStats, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, entry llm.RequestLogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (provider, model, purpose, input_tokens, output_tokens, latency_ms,
		  success, error_message, request_body, response_body)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Provider, entry.Model, entry.Purpose,
		entry.InputTokens, entry.OutputTokens, entry.LatencyMs,
		entry.Success, entry.ErrorMessage, entry.RequestBody, entry.ResponseBody)
	if err != nil {
		return fmt.Errorf("save llm request: %w", err)
	}
	return nil
}

const llmRequestColumns = `id, created_at, provider, model, purpose,
	input_tokens, output_tokens, latency_ms, success, error_message,
	request_body, response_body`

func (r *eventRepo) ListLLMRequests(ctx context.Context, limit int) ([]LLMRequest, error) {
	q := "SELECT " + llmRequestColumns + " FROM llm_requests ORDER BY id DESC"
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		req, err := scanLLMRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list llm requests: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, id int64) (*LLMRequest, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+llmRequestColumns+" FROM llm_requests WHERE id = ?", id)
	req, err := scanLLMRequest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrEventNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *eventRepo) AppendSession(ctx context.Context, rec SessionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO quiz_sessions (id, mode, score, total, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Score, rec.Total, rec.StartedAt, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *eventRepo) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	q := `SELECT id, mode, score, total, started_at, finished_at
	      FROM quiz_sessions ORDER BY finished_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.Mode, &rec.Score, &rec.Total,
			&rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (r *eventRepo) SessionStats(ctx context.Context) (SessionStats, error) {
	var stats SessionStats
	var last sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), MAX(finished_at)
		 FROM quiz_sessions`).Scan(&stats.Sessions, &stats.BestScore, &last)
	if err != nil {
		return SessionStats{}, fmt.Errorf("session stats: %w", err)
	}
	if last.Valid {
		stats.LastPlayedAt = last.Time
	}
	if stats.Sessions > 0 {
		err = r.db.QueryRowContext(ctx,
			`SELECT total FROM quiz_sessions ORDER BY score DESC, finished_at DESC LIMIT 1`,
		).Scan(&stats.BestTotal)
		if err != nil {
			return SessionStats{}, fmt.Errorf("session stats: %w", err)
		}
	}
	return stats, nil
}

func scanLLMRequest(row rowScanner) (LLMRequest, error) {
	var req LLMRequest
	err := row.Scan(&req.ID, &req.CreatedAt, &req.Provider, &req.Model,
		&req.Purpose, &req.InputTokens, &req.OutputTokens, &req.LatencyMs,
		&req.Success, &req.ErrorMessage, &req.RequestBody, &req.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return LLMRequest{}, err
	}
	if err != nil {
		return LLMRequest{}, fmt.Errorf("scan llm request: %w", err)
	}
	return req, nil
}
