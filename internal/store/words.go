package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arnav/wordwise/internal/vocab"
)

var (
	// ErrDuplicate means a word with the same text and definition exists.
	ErrDuplicate = errors.New("store: word already exists")

	// ErrNotFound means no word with the given id exists.
	ErrNotFound = errors.New("store: word not found")
)

// WordRepo manages the vocabulary and per-word attempt stats.
type WordRepo interface {
	// List returns all words ordered by insertion time, oldest first.
	List(ctx context.Context) ([]vocab.Word, error)

	// Add inserts a word, assigning an id when the word doesn't carry one.
	// Returns ErrDuplicate when a word with the same text and definition
	// is already stored.
	Add(ctx context.Context, w vocab.Word) (vocab.Word, error)

	// Delete removes a word and its attempts. Returns ErrNotFound for an
	// unknown id.
	Delete(ctx context.Context, id string) error

	// RecordAttempt appends one attempt, bumps the word's counters, and
	// returns the refreshed word list.
	RecordAttempt(ctx context.Context, wordID string, correct bool) ([]vocab.Word, error)

	// Reset deletes all words, attempts, and session history.
	Reset(ctx context.Context) error
}

type wordRepo struct {
	db *sql.DB
}

const wordColumns = "id, word, definition, part_of_speech, language, correct, incorrect, added_at"

func (r *wordRepo) List(ctx context.Context) ([]vocab.Word, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+wordColumns+" FROM words ORDER BY added_at, id")
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var words []vocab.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return words, nil
}

func (r *wordRepo) Add(ctx context.Context, w vocab.Word) (vocab.Word, error) {
	w.Text = vocab.FormatWord(w.Text)
	w.Definition = strings.TrimSpace(w.Definition)
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.Language == "" {
		w.Language = vocab.DefaultLanguage
	}
	if w.AddedAt.IsZero() {
		w.AddedAt = time.Now().UTC()
	}

	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM words WHERE word = ? AND definition = ?)",
		w.Text, w.Definition,
	).Scan(&exists)
	if err != nil {
		return vocab.Word{}, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return vocab.Word{}, fmt.Errorf("%w: %q", ErrDuplicate, w.Text)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO words (id, word, definition, part_of_speech, language, correct, incorrect, added_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Text, w.Definition, w.PartOfSpeech, w.Language,
		w.Stats.Correct, w.Stats.Incorrect, w.AddedAt)
	if err != nil {
		return vocab.Word{}, fmt.Errorf("insert word: %w", err)
	}
	return w, nil
}

func (r *wordRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM words WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete word: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (r *wordRepo) RecordAttempt(ctx context.Context, wordID string, correct bool) ([]vocab.Word, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	column := "incorrect"
	if correct {
		column = "correct"
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE words SET "+column+" = "+column+" + 1 WHERE id = ?", wordID)
	if err != nil {
		return nil, fmt.Errorf("update stats: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update stats: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, wordID)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO attempts (word_id, correct) VALUES (?, ?)",
		wordID, correct); err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit attempt: %w", err)
	}
	return r.List(ctx)
}

func (r *wordRepo) Reset(ctx context.Context) error {
	for _, table := range []string{"attempts", "quiz_sessions", "words"} {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (vocab.Word, error) {
	var w vocab.Word
	err := row.Scan(&w.ID, &w.Text, &w.Definition, &w.PartOfSpeech,
		&w.Language, &w.Stats.Correct, &w.Stats.Incorrect, &w.AddedAt)
	if err != nil {
		return vocab.Word{}, fmt.Errorf("scan word: %w", err)
	}
	return w, nil
}
