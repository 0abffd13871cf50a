package utils

import "testing"

func TestGenerateSessionTokenLength(t *testing.T) {
	for _, n := range []int{16, 32, 33} {
		token, err := GenerateSessionToken(n)
		if err != nil {
			t.Fatalf("GenerateSessionToken(%d): %v", n, err)
		}
		if len(token) != n {
			t.Errorf("len(GenerateSessionToken(%d)) = %d", n, len(token))
		}
	}
}

func TestGenerateSessionTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := GenerateSessionToken(32)
		if err != nil {
			t.Fatalf("GenerateSessionToken: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token %q", token)
		}
		seen[token] = true
	}
}
