package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/culprog/backend/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	s := Sessions{Secret: []byte("test-secret"), TTL: time.Hour}
	u := models.User{ID: "u1", Name: "Alva", Role: models.RoleCoach}

	token, err := s.Issue(u, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "u1" || claims.Role != models.RoleCoach || claims.Name != "Alva" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	s := Sessions{Secret: []byte("test-secret"), TTL: time.Minute}
	token, err := s.Issue(models.User{ID: "u1"}, time.Now().Add(-2*time.Minute))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := s.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for expired token, got %v", err)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := Sessions{Secret: []byte("one"), TTL: time.Hour}
	verifier := Sessions{Secret: []byte("two"), TTL: time.Hour}
	token, err := issuer.Issue(models.User{ID: "u1"}, time.Now())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for wrong secret, got %v", err)
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPassword(hash, "hunter2") {
		t.Fatalf("expected password to verify")
	}
	if CheckPassword(hash, "hunter3") {
		t.Fatalf("expected wrong password to fail")
	}
}
