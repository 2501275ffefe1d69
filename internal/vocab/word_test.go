package vocab

import "testing"

func TestFormatWord(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ephemeral", "Ephemeral"},
		{"  EPHEMERAL  ", "Ephemeral"},
		{"e", "E"},
		{"", ""},
		{"   ", ""},
		{"übel", "Übel"},
	}
	for _, tt := range tests {
		if got := FormatWord(tt.in); got != tt.want {
			t.Errorf("FormatWord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStatsAccuracy(t *testing.T) {
	s := Stats{Correct: 3, Incorrect: 1}
	if s.Attempts() != 4 {
		t.Errorf("Attempts() = %d, want 4", s.Attempts())
	}
	if s.Accuracy() != 0.75 {
		t.Errorf("Accuracy() = %v, want 0.75", s.Accuracy())
	}

	var zero Stats
	if zero.Accuracy() != 0 {
		t.Errorf("Accuracy() on zero stats = %v, want 0", zero.Accuracy())
	}
}
