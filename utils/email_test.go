package utils

import "testing"

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"student@oau.edu.ng", "s***t@oau.edu.ng"},
		{"ab@oau.edu.ng", "a***@oau.edu.ng"},
		{"a@oau.edu.ng", "a@oau.edu.ng"},
		{"notanemail", "notanemail"},
	}

	for _, tt := range tests {
		if got := MaskEmail(tt.input); got != tt.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
