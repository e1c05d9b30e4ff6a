package utils

import (
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("test-secret", "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateToken("test-secret", token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "admin" {
		t.Fatalf("expected user id admin, got %q", claims.UserID)
	}
	if claims.Issuer != "draftflow" {
		t.Fatalf("expected issuer draftflow, got %q", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("test-secret", "admin", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Fatal("expected validation failure with the wrong secret")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	token, err := GenerateToken("test-secret", "admin", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ValidateToken("test-secret", token); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	if _, err := ValidateToken("test-secret", "not-a-jwt"); err == nil {
		t.Fatal("expected validation failure for malformed token")
	}
}
