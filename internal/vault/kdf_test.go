package vault

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	k1, err := DeriveKey([]byte("hunter2"), salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	k2, err := DeriveKey([]byte("hunter2"), salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("Same password and salt produced different keys")
	}
	if len(k1) != KeySize {
		t.Errorf("Expected %d-byte key, got %d bytes", KeySize, len(k1))
	}
}

func TestDeriveKey_DifferentSaltsDifferentKeys(t *testing.T) {
	s1 := bytes.Repeat([]byte{0x01}, SaltSize)
	s2 := bytes.Repeat([]byte{0x02}, SaltSize)

	k1, err := DeriveKey([]byte("hunter2"), s1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	k2, err := DeriveKey([]byte("hunter2"), s2)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if bytes.Equal(k1, k2) {
		t.Error("Different salts produced the same key")
	}
}

func TestDeriveKey_EmptyPasswordAccepted(t *testing.T) {
	salt := bytes.Repeat([]byte{0x5a}, SaltSize)

	// Empty passwords are a policy matter for the UI, not this primitive.
	key, err := DeriveKey([]byte{}, salt)
	if err != nil {
		t.Fatalf("Expected empty password to be accepted, got: %v", err)
	}
	if len(key) != KeySize {
		t.Errorf("Expected %d-byte key, got %d bytes", KeySize, len(key))
	}
}

func TestDeriveKey_RejectsBadSalt(t *testing.T) {
	if _, err := DeriveKey([]byte("hunter2"), []byte("short")); err == nil {
		t.Error("Expected error for undersized salt, got nil")
	}
}

// Known-answer test pinning the exact KDF parameters. Computed with an
// independent PBKDF2 implementation; if this fails, existing databases can
// no longer be unlocked.
func TestDeriveKey_KnownAnswer(t *testing.T) {
	salt, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("Failed to decode salt: %v", err)
	}

	key, err := DeriveKey([]byte("correct horse battery staple"), salt)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	expected := "ef8970894e11c302383e9d31b220979179c2e8964100f3a99a52cdc7ce6f9f77"
	if got := hex.EncodeToString(key); got != expected {
		t.Errorf("KDF known answer mismatch:\n  expected: %s\n  got:      %s", expected, got)
	}
}

func TestNewSalt_FreshEveryCall(t *testing.T) {
	s1, err := NewSalt()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	s2, err := NewSalt()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(s1) != SaltSize {
		t.Errorf("Expected %d-byte salt, got %d bytes", SaltSize, len(s1))
	}
	if bytes.Equal(s1, s2) {
		t.Error("Two salts in a row were identical")
	}
}
