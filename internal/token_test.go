package internal

import (
	"strings"
	"testing"
)

func TestNewTokenShape(t *testing.T) {
	token, err := NewToken()
	if err != nil {
		t.Fatalf("NewToken failed: %v", err)
	}
	if len(token) != TokenLength {
		t.Fatalf("expected length %d, got %d", TokenLength, len(token))
	}
	if strings.ContainsAny(token, "+/=") {
		t.Fatalf("expected URL-safe alphabet, got %q", token)
	}
}

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		token, err := NewToken()
		if err != nil {
			t.Fatalf("NewToken failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[token] = true
	}
}
