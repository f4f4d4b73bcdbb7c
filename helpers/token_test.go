package helpers

import (
	"testing"
)

func TestTokenRoundtrip(t *testing.T) {
	SetJWTKey("test-signing-key")

	access, refresh := GenerateTokens("kiwi@example.com", "user-1", "USER")
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens")
	}

	claims, err := ValidateToken(access)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "kiwi@example.com" || claims.Role != "USER" {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestValidateToken_Invalid(t *testing.T) {
	SetJWTKey("test-signing-key")

	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected garbage to fail")
	}

	// Token signed under a different key.
	access, _ := GenerateTokens("a@b.c", "u", "USER")
	SetJWTKey("rotated-key")
	if _, err := ValidateToken(access); err == nil {
		t.Error("expected stale signature to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	pwd := "hunter42"
	hashed := HashPassword(&pwd)
	if hashed == nil || *hashed == pwd {
		t.Fatal("expected a real hash")
	}

	if ok, _ := VerifyPassword(*hashed, pwd); !ok {
		t.Error("correct password rejected")
	}
	if ok, _ := VerifyPassword(*hashed, "wrong"); ok {
		t.Error("wrong password accepted")
	}
}

func TestUpdateAllTokens_NoRemote(t *testing.T) {
	// Without a Mongo connection the token mirror fails cleanly.
	if err := UpdateAllTokens("a", "r", "u"); err == nil {
		t.Error("expected an error in local-only mode")
	}
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _ := GenerateResetToken()
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected unique tokens")
	}
}
