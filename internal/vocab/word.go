package vocab

import (
	"strings"
	"time"
)

// Word is a single vocabulary entry with its mastery counters.
type Word struct {
	// ID is a UUID assigned when the entry is created.
	ID string

	// Text is the word itself, stored with the first letter capitalized.
	Text string

	// Definition is the meaning the learner chose for this word.
	Definition string

	// PartOfSpeech is the dictionary part of speech. Empty when unknown.
	PartOfSpeech string

	// Language is the ISO-ish language tag the word belongs to, e.g. "EN".
	Language string

	// Stats holds the mastery counters, persisted by the store.
	Stats Stats

	// AddedAt is when the entry was created.
	AddedAt time.Time
}

// Stats counts quiz attempts for a word.
type Stats struct {
	Correct   int
	Incorrect int
}

// Attempts returns the total number of recorded attempts.
func (s Stats) Attempts() int {
	return s.Correct + s.Incorrect
}

// Accuracy returns the fraction of correct attempts, 0 when unattempted.
func (s Stats) Accuracy() float64 {
	n := s.Attempts()
	if n == 0 {
		return 0
	}
	return float64(s.Correct) / float64(n)
}

// DefaultLanguage is used when no language tag is given.
const DefaultLanguage = "EN"

// FormatWord normalizes a word for storage: trimmed, first letter upper,
// rest lower. Matches how entries are displayed throughout the app.
func FormatWord(raw string) string {
	w := strings.TrimSpace(raw)
	if w == "" {
		return ""
	}
	r := []rune(w)
	return strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
}
