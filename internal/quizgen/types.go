package quizgen

import "github.com/arnav/wordwise/internal/vocab"

// Mode selects how a question is asked and answered.
type Mode string

const (
	// ModeWritten shows the definition and asks the learner to type the word.
	ModeWritten Mode = "written"

	// ModeMCDef shows the definition and offers four words to pick from.
	ModeMCDef Mode = "mc_def"

	// ModeMCWord shows the word and offers four definitions to pick from.
	ModeMCWord Mode = "mc_word"

	// ModeSentence asks the learner to use the word in a sentence,
	// graded by the remote model.
	ModeSentence Mode = "sentence_builder"
)

// OptionCount is the number of choices shown in multiple-choice modes.
const OptionCount = 4

// MultipleChoice reports whether the mode presents options.
func (m Mode) MultipleChoice() bool {
	return m == ModeMCDef || m == ModeMCWord
}

// MinWords returns the smallest collection size that can start a session
// in this mode. Choice modes need enough words for distractors.
func (m Mode) MinWords() int {
	if m.MultipleChoice() {
		return OptionCount
	}
	return 1
}

// Label returns the menu label for the mode.
func (m Mode) Label() string {
	switch m {
	case ModeMCDef:
		return "Pick the Word"
	case ModeMCWord:
		return "Pick the Definition"
	case ModeWritten:
		return "Written"
	case ModeSentence:
		return "Use it in a Sentence"
	}
	return string(m)
}

// AllModes lists the modes in menu order, easiest first.
func AllModes() []Mode {
	return []Mode{ModeMCDef, ModeMCWord, ModeWritten, ModeSentence}
}

// Question is a single quiz question ready for display.
type Question struct {
	// Target is the word being asked about.
	Target vocab.Word

	// Options holds exactly OptionCount entries for choice modes, one of
	// which is Target. Nil for written and sentence modes.
	Options []vocab.Word
}

// Answer is a submitted answer. Text is set for written and sentence
// modes; Choice is the full selected word for choice modes.
type Answer struct {
	Text   string
	Choice *vocab.Word
}
