package controllers

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short text untouched", "hello", "hello"},
		{"exactly at the limit", strings.Repeat("a", 100), strings.Repeat("a", 100)},
		{"long ascii truncated", strings.Repeat("a", 150), strings.Repeat("a", 100)},
		{"multibyte text truncated on rune boundary", strings.Repeat("é", 150), strings.Repeat("é", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messagePreview(tt.input)
			if got != tt.want {
				t.Errorf("messagePreview() length %d, want length %d", len(got), len(tt.want))
			}
			if !utf8.ValidString(got) {
				t.Error("preview is not valid UTF-8")
			}
		})
	}
}
