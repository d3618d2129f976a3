package tui

import (
	"strings"
	"testing"
)

func TestEditRune(t *testing.T) {
	tests := []struct {
		text, key, want string
	}{
		{"", "a", "a"},
		{"le", "e", "lee"},
		{"lee", "backspace", "le"},
		{"", "backspace", ""},
		{"héé", "backspace", "hé"},
		{"amy", "space", "amy "},
		{"amy", "enter", "amy"},
		{"amy", "ctrl+a", "amy"},
	}
	for _, tt := range tests {
		if got := editRune(tt.text, tt.key); got != tt.want {
			t.Errorf("editRune(%q, %q) = %q, want %q", tt.text, tt.key, got, tt.want)
		}
	}
}

func TestEditRuneClampsLength(t *testing.T) {
	full := strings.Repeat("x", maxInputLen)
	if got := editRune(full, "y"); got != full {
		t.Errorf("editRune at max length appended, len = %d", len(got))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"Lee Robinson", 5, "Lee …"},
		{"ab", 1, "a"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
