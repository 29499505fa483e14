package security

import (
	"testing"
	"time"

	"github.com/shopstack/accounts-api/internal/core/domain"
)

func TestJWTIssuer_IssueAndResolve(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	token, err := issuer.Issue(&domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	sub, err := issuer.Subject(token)
	if err != nil {
		t.Fatalf("subject failed: %v", err)
	}
	if sub != "user-1" {
		t.Fatalf("expected subject user-1, got %s", sub)
	}
}

func TestJWTIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)
	other := NewJWTIssuer("other-secret", time.Hour)

	token, err := other.Issue(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := issuer.Subject(token); err == nil {
		t.Fatalf("expected error for token signed with a different secret")
	}
}

func TestJWTIssuer_RejectsExpired(t *testing.T) {
	issuer := &JWTIssuer{secret: []byte("secret"), ttl: -time.Minute}

	token, err := issuer.Issue(&domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if _, err := issuer.Subject(token); err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestJWTIssuer_RejectsGarbage(t *testing.T) {
	issuer := NewJWTIssuer("secret", time.Hour)

	if _, err := issuer.Subject("not-a-token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
