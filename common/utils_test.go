package common

import (
	"testing"
)

func TestSanitizeFilenamePart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Acme", "Acme"},
		{"spaces collapse", "Acme Coffee Roasters", "Acme_Coffee_Roasters"},
		{"punctuation runs collapse", "Bob's  Bakery & Café!!", "Bob_s_Bakery_Caf"},
		{"leading trailing stripped", "  --Acme--  ", "Acme"},
		{"digits kept", "Store 24/7", "Store_24_7"},
		{"nothing left", "!!!***", ""},
		{"empty", "", ""},
		{"unicode dropped", "北京烤鸭店", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFilenamePart(tt.input); got != tt.want {
				t.Errorf("SanitizeFilenamePart(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{"short stays", "abc", 10, "abc"},
		{"exact stays", "abcde", 5, "abcde"},
		{"long truncated", "abcdefgh", 5, "abcde..."},
		{"zero limit stays", "abc", 0, "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateString(tt.input, tt.limit); got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}
