package middleware

import (
	"testing"
	"time"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := "64f1b2c3d4e5f6a7b8c9d0e1"
	access, refresh, err := GenerateJWT(userID, "student@oau.edu.ng", "user")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected non-empty token pair")
	}
	if access == refresh {
		t.Error("access and refresh tokens must differ")
	}

	claims, err := ParseToken(access)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("claims.UserID = %q, want %q", claims.UserID, userID)
	}
	if claims.Email != "student@oau.edu.ng" {
		t.Errorf("claims.Email = %q, want %q", claims.Email, "student@oau.edu.ng")
	}
	if claims.Role != "user" {
		t.Errorf("claims.Role = %q, want %q", claims.Role, "user")
	}

	// Refresh token outlives the access token
	refreshClaims, err := ParseToken(refresh)
	if err != nil {
		t.Fatalf("ParseToken(refresh) failed: %v", err)
	}
	if refreshClaims.ExpiresAt <= claims.ExpiresAt {
		t.Error("refresh token must expire after the access token")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	access, _, err := GenerateJWT("64f1b2c3d4e5f6a7b8c9d0e1", "a@b.co", "user")
	if err != nil {
		t.Fatal(err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, err := ParseToken(access); err == nil {
		t.Error("expected signature verification to fail under a different secret")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestTokenBlacklist(t *testing.T) {
	token := "blacklist-me"
	if IsTokenBlacklisted(token) {
		t.Fatal("token unexpectedly blacklisted before the test")
	}

	BlacklistToken(token, time.Now().Add(time.Hour))
	if !IsTokenBlacklisted(token) {
		t.Error("token not found in blacklist after BlacklistToken")
	}
}
