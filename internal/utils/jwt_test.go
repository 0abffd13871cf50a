package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	jwtUtil := NewJWTUtil("test-secret")

	token, err := jwtUtil.GenerateToken("user123", "tech@example.com", "tech")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := jwtUtil.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user123" {
		t.Errorf("UserID = %q, want user123", claims.UserID)
	}
	if claims.Email != "tech@example.com" {
		t.Errorf("Email = %q, want tech@example.com", claims.Email)
	}
	if claims.Role != "tech" {
		t.Errorf("Role = %q, want tech", claims.Role)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := NewJWTUtil("secret-a").GenerateToken("user123", "tech@example.com", "tech")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewJWTUtil("secret-b").ValidateToken(token); err == nil {
		t.Error("token signed with another secret was accepted")
	}
}

func TestJWTGarbageToken(t *testing.T) {
	if _, err := NewJWTUtil("test-secret").ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}

func TestGenerateCodeLength(t *testing.T) {
	for _, n := range []int{10, 32} {
		if got := len(GenerateCode(n)); got != n {
			t.Errorf("len(GenerateCode(%d)) = %d", n, got)
		}
	}
}
