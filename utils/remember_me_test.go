package utils

import (
	"testing"
	"time"
)

func TestEncryptDecryptCredentials(t *testing.T) {
	t.Setenv("REMEMBER_ME_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	original := RememberedCredentials{
		Email:      "student@oau.edu.ng",
		UserID:     "64f1b2c3d4e5f6a7b8c9d0e1",
		ExpiresAt:  time.Now().Add(24 * time.Hour).Truncate(time.Second),
		DeviceInfo: "test-agent",
	}

	blob, err := EncryptCredentials(original)
	if err != nil {
		t.Fatalf("EncryptCredentials failed: %v", err)
	}
	if blob == "" {
		t.Fatal("expected non-empty ciphertext")
	}

	got, err := DecryptCredentials(blob)
	if err != nil {
		t.Fatalf("DecryptCredentials failed: %v", err)
	}
	if got.Email != original.Email || got.UserID != original.UserID || got.DeviceInfo != original.DeviceInfo {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", got, original)
	}
	if !got.ExpiresAt.Equal(original.ExpiresAt) {
		t.Errorf("ExpiresAt mismatch: got %v, want %v", got.ExpiresAt, original.ExpiresAt)
	}
}

func TestDecryptCredentialsRejectsTampering(t *testing.T) {
	t.Setenv("REMEMBER_ME_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	blob, err := EncryptCredentials(RememberedCredentials{Email: "a@b.co"})
	if err != nil {
		t.Fatal(err)
	}

	// Flip one character of the base64 blob
	tampered := []byte(blob)
	if tampered[10] == 'A' {
		tampered[10] = 'B'
	} else {
		tampered[10] = 'A'
	}
	if _, err := DecryptCredentials(string(tampered)); err == nil {
		t.Error("expected tampered ciphertext to fail authentication")
	}

	if _, err := DecryptCredentials("not-base64!!!"); err == nil {
		t.Error("expected invalid base64 to fail")
	}
	if _, err := DecryptCredentials(""); err == nil {
		t.Error("expected empty blob to fail")
	}
}

func TestRememberMeTokenGeneration(t *testing.T) {
	a, err := GenerateRememberMeToken()
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateRememberMeToken()
	if err != nil {
		t.Fatal(err)
	}
	if a == "" || a == b {
		t.Error("tokens must be non-empty and unique")
	}
}

func TestRememberMeStoreNilClient(t *testing.T) {
	if err := StoreRememberMeToken(nil, "tok", RememberedCredentials{}); err == nil {
		t.Error("expected error storing with nil redis client")
	}
	if _, err := GetRememberedCredentials(nil, "tok"); err == nil {
		t.Error("expected error reading with nil redis client")
	}
	if err := DeleteRememberMeToken(nil, "tok"); err != nil {
		t.Errorf("delete with nil client must be a no-op, got %v", err)
	}
}
