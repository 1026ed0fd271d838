package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewManager([]byte("test-secret"), time.Hour)

	token, err := manager.Issue("c1", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.ClientID() != "c1" || claims.Name != "Alice" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenExpiryRejected(t *testing.T) {
	manager := NewManager([]byte("test-secret"), -time.Minute)

	token, err := manager.Issue("c1", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := manager.Verify(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	manager := NewManager([]byte("test-secret"), time.Hour)
	other := NewManager([]byte("other-secret"), time.Hour)

	token, err := manager.Issue("c1", "Alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	manager := NewManager([]byte("test-secret"), time.Hour)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := manager.Verify(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
