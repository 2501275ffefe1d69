package quizgen

import (
	"errors"
	"math/rand/v2"

	"github.com/arnav/wordwise/internal/vocab"
)

// ErrQueueEmpty is returned when Next is called with nothing left to ask.
// Callers check exhaustion first and treat it as the end of the session.
var ErrQueueEmpty = errors.New("question queue is empty")

// ErrTooFewWords is returned when a choice-mode question cannot gather
// enough distractors from the collection.
var ErrTooFewWords = errors.New("not enough words for distractors")

// Next pops the head of queue as the target and builds a question for it.
// For choice modes it draws three distinct distractors uniformly from
// words (excluding the target) and shuffles them together with the target.
// Returns the question and the remaining queue.
func Next(queue []vocab.Word, words []vocab.Word, mode Mode, rng *rand.Rand) (*Question, []vocab.Word, error) {
	if len(queue) == 0 {
		return nil, nil, ErrQueueEmpty
	}

	target := queue[0]
	remaining := queue[1:]

	q := &Question{Target: target}
	if !mode.MultipleChoice() {
		return q, remaining, nil
	}

	others := make([]vocab.Word, 0, len(words)-1)
	for _, w := range words {
		if w.ID != target.ID {
			others = append(others, w)
		}
	}
	if len(others) < OptionCount-1 {
		return nil, nil, ErrTooFewWords
	}

	rng.Shuffle(len(others), func(i, j int) {
		others[i], others[j] = others[j], others[i]
	})

	options := append([]vocab.Word{target}, others[:OptionCount-1]...)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	q.Options = options
	return q, remaining, nil
}

// ShuffleWords returns a uniformly shuffled copy of words, used to build
// the session queue.
func ShuffleWords(words []vocab.Word, rng *rand.Rand) []vocab.Word {
	out := make([]vocab.Word, len(words))
	copy(out, words)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
