package auth_test

import (
	"testing"

	"github.com/merrickb/recipebox/internal/auth"
)

func TestGenerateToken(t *testing.T) {
	m := auth.NewManager("test-secret")

	first, err := m.GenerateToken()

	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if len(first) != 40 {
		t.Fatalf("token length = %d, want 40 hex chars", len(first))
	}

	second, err := m.GenerateToken()

	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if first == second {
		t.Fatal("two generated tokens are identical")
	}
}

func TestHashToken(t *testing.T) {
	m := auth.NewManager("test-secret")

	raw := "aabbccddeeff00112233445566778899aabbccdd"

	if m.HashToken(raw) != m.HashToken(raw) {
		t.Fatal("hash is not deterministic for the same secret")
	}

	if m.HashToken(raw) == raw {
		t.Fatal("hash equals the raw token")
	}

	other := auth.NewManager("other-secret")

	if m.HashToken(raw) == other.HashToken(raw) {
		t.Fatal("different secrets produced the same hash")
	}
}
