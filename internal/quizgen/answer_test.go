package quizgen

import (
	"testing"

	"github.com/arnav/wordwise/internal/vocab"
)

func TestCheckAnswer_Written(t *testing.T) {
	q := &Question{Target: vocab.Word{ID: "a", Text: "ephemeral"}}

	tests := []struct {
		answer string
		want   bool
	}{
		{"ephemeral", true},
		{"Ephemeral ", true},
		{"  EPHEMERAL", true},
		{"ephemral", false},
		{"", false},
	}
	for _, tt := range tests {
		got := CheckAnswer(Answer{Text: tt.answer}, q, ModeWritten)
		if got != tt.want {
			t.Errorf("written %q = %v, want %v", tt.answer, got, tt.want)
		}
	}
}

func TestCheckAnswer_Choice(t *testing.T) {
	target := vocab.Word{ID: "a", Text: "Ephemeral"}
	other := vocab.Word{ID: "b", Text: "Lucid"}
	q := &Question{Target: target, Options: []vocab.Word{target, other}}

	for _, mode := range []Mode{ModeMCDef, ModeMCWord} {
		if !CheckAnswer(Answer{Choice: &target}, q, mode) {
			t.Errorf("%s: target choice should be correct", mode)
		}
		if CheckAnswer(Answer{Choice: &other}, q, mode) {
			t.Errorf("%s: distractor choice should be incorrect", mode)
		}
		if CheckAnswer(Answer{}, q, mode) {
			t.Errorf("%s: nil choice should be incorrect", mode)
		}
	}
}

func TestCheckAnswer_SentenceNeverSync(t *testing.T) {
	q := &Question{Target: vocab.Word{ID: "a", Text: "Ephemeral"}}
	if CheckAnswer(Answer{Text: "anything"}, q, ModeSentence) {
		t.Error("sentence mode must not be graded synchronously")
	}
}
