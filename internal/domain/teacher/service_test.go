package teacher

import (
	"strings"
	"testing"
)

func TestGeneratePassword(t *testing.T) {
	password, err := GeneratePassword(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(password) != 12 {
		t.Fatalf("expected 12 characters, got %d", len(password))
	}
	for _, r := range password {
		if !strings.ContainsRune(passwordAlphabet, r) {
			t.Fatalf("character %q outside alphabet", r)
		}
	}
}

func TestGeneratePasswordRejectsShortLength(t *testing.T) {
	if _, err := GeneratePassword(4); err == nil {
		t.Fatal("expected error for short length")
	}
}

func TestGeneratePasswordNotConstant(t *testing.T) {
	a, err := GeneratePassword(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := GeneratePassword(12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Fatal("two generated passwords should not match")
	}
}
