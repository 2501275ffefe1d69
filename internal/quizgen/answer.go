package quizgen

import "strings"

// CheckAnswer decides correctness for the synchronous modes.
//
// Rules:
//   - written: trimmed, case-insensitive match against the target word
//   - mc_def / mc_word: the chosen word's ID must match the target's ID
//
// Sentence mode is not handled here; it is graded remotely.
func CheckAnswer(ans Answer, q *Question, mode Mode) bool {
	switch mode {
	case ModeWritten:
		return strings.EqualFold(
			strings.TrimSpace(ans.Text),
			strings.TrimSpace(q.Target.Text),
		)
	case ModeMCDef, ModeMCWord:
		return ans.Choice != nil && ans.Choice.ID == q.Target.ID
	}
	return false
}
