package utils

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	tok := GenerateRandomToken(6)
	if len(tok) != 6 {
		t.Fatalf("token length = %d, want 6", len(tok))
	}
}
