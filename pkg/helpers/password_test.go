package helpers

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" || !IsHash(hash) {
		t.Fatalf("expected a bcrypt hash, got %q", hash)
	}
	if !h.Compare(hash, "s3cret") {
		t.Fatal("hash should match its plaintext")
	}
	if h.Compare(hash, "other") {
		t.Fatal("hash matched a different password")
	}

	again, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if again == hash {
		t.Fatal("expected a fresh salt per hash")
	}
}

func TestPasswordHasherRejectsEmptyAndClampsCost(t *testing.T) {
	if _, err := NewPasswordHasher(bcrypt.MinCost).Hash(""); err == nil {
		t.Fatal("expected error for empty password")
	}
	if got := NewPasswordHasher(99).Cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected cost clamped to default, got %d", got)
	}
	if IsHash("plaintext") {
		t.Fatal("plaintext reported as hash")
	}
}
