package grader

import "fmt"

const gradingSystemPrompt = `You are an English language tutor helpfully correcting a student. Evaluate whether the student used the given word correctly in their sentence.

Respond using this EXACT format:
VERDICT: [CORRECT or INCORRECT]
FEEDBACK: [Your brief explanation here]`

// buildGradingPrompt renders the user message for one grading request.
func buildGradingPrompt(word, definition, sentence string) string {
	return fmt.Sprintf(
		"The student uses the word %q (definition: %q) in a sentence.\n\nStudent's sentence: %q\n\nEvaluate if the student used the word correctly.",
		word, definition, sentence,
	)
}
