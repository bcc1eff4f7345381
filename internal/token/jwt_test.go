package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, claims Claims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString() unexpected error: %v", err)
	}
	return s
}

func TestGenerate(t *testing.T) {
	tok, err := Generate("alfred", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}
	if tok == "" {
		t.Fatal("Generate() returned empty string")
	}
}

func TestGenerateRequiresSubject(t *testing.T) {
	if _, err := Generate("", "test-secret", time.Hour); err != ErrSubjectRequired {
		t.Errorf("Generate() error = %v, want %v", err, ErrSubjectRequired)
	}
}

func TestValidateValid(t *testing.T) {
	secret := "test-secret"

	tok, err := Generate("alfred", secret, time.Hour)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	claims, err := Validate(tok, secret)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if claims.Subject != "alfred" {
		t.Errorf("Validate() Subject = %q, want %q", claims.Subject, "alfred")
	}
}

func TestValidateInvalid(t *testing.T) {
	if _, err := Validate("not-a-valid-token", "test-secret"); err != ErrInvalidToken {
		t.Errorf("Validate() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	tok, err := Generate("alfred", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	if _, err := Validate(tok, "wrong-secret"); err == nil {
		t.Error("Validate() expected error for wrong secret")
	}
}

func TestValidateExpired(t *testing.T) {
	tok, err := Generate("alfred", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("Generate() unexpected error: %v", err)
	}

	if _, err := Validate(tok, "test-secret"); err == nil {
		t.Error("Validate() expected error for expired token")
	}
}

func TestValidateRejectsBadClaims(t *testing.T) {
	secret := "test-secret"
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name   string
		claims jwt.RegisteredClaims
	}{
		{"wrong issuer", jwt.RegisteredClaims{Issuer: "wrong-issuer", Subject: "alfred", Audience: jwt.ClaimStrings{Audience}, ExpiresAt: exp}},
		{"wrong audience", jwt.RegisteredClaims{Issuer: Issuer, Subject: "alfred", Audience: jwt.ClaimStrings{"wrong-audience"}, ExpiresAt: exp}},
		{"missing subject", jwt.RegisteredClaims{Issuer: Issuer, Audience: jwt.ClaimStrings{Audience}, ExpiresAt: exp}},
		{"missing expiry", jwt.RegisteredClaims{Issuer: Issuer, Subject: "alfred", Audience: jwt.ClaimStrings{Audience}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := sign(t, Claims{RegisteredClaims: tt.claims}, secret)
			if _, err := Validate(tok, secret); err == nil {
				t.Errorf("Validate() expected error for %s", tt.name)
			}
		})
	}
}
