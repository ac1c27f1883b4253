package utils

import (
	"strings"
	"testing"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"escapes html", "<b>bold</b>", "&lt;b&gt;bold&lt;/b&gt;"},
		{"strips control characters", "a\x00b\x1fc", "abc"},
		{"plain text untouched", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeInput(tt.input); got != tt.want {
				t.Errorf("SanitizeInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeEmail(t *testing.T) {
	got, err := SanitizeEmail("  Student@OAU.Edu.NG ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "student@oau.edu.ng" {
		t.Errorf("SanitizeEmail lowercased = %q, want %q", got, "student@oau.edu.ng")
	}

	for _, bad := range []string{"", "notanemail", "a@b", "@oau.edu.ng", "user@"} {
		if _, err := SanitizeEmail(bad); err == nil {
			t.Errorf("SanitizeEmail(%q) accepted invalid email", bad)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	valid := []string{"ade123", "john.doe", "user_name", "abc"}
	for _, u := range valid {
		if err := ValidateUsername(u); err != nil {
			t.Errorf("ValidateUsername(%q) rejected valid username: %v", u, err)
		}
	}

	invalid := []string{"ab", "user name", "user@name", strings.Repeat("a", 31), ""}
	for _, u := range invalid {
		if err := ValidateUsername(u); err == nil {
			t.Errorf("ValidateUsername(%q) accepted invalid username", u)
		}
	}
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		size      int64
		mediaType string
		wantErr   bool
	}{
		{"valid jpg", "photo.jpg", 1024, "image", false},
		{"valid mp4", "clip.MP4", 1024, "video", false},
		{"valid pdf", "notes.pdf", 1024, "file", false},
		{"image too large", "photo.jpg", maxFileSize + 1, "image", true},
		{"exe rejected as file", "malware.exe", 1024, "file", true},
		{"video ext rejected as image", "clip.mp4", 1024, "image", true},
		{"unknown media type", "photo.jpg", 1024, "audio", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.filename, tt.size, tt.mediaType)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFile(%q, %d, %q) error = %v, wantErr %v",
					tt.filename, tt.size, tt.mediaType, err, tt.wantErr)
			}
		})
	}
}
