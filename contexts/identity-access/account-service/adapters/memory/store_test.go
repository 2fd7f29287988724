package memory

import (
	"context"
	"testing"
	"time"

	"advidly/contexts/identity-access/account-service/domain/entities"
	domainerrors "advidly/contexts/identity-access/account-service/domain/errors"
)

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	store := NewStore()

	first, err := store.CreateUser(context.Background(), entities.User{Email: "a@x.com", Username: "a1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := store.CreateUser(context.Background(), entities.User{Email: "b@x.com", Username: "b1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestDuplicateProfilePerUserRejected(t *testing.T) {
	store := NewStore()

	user, err := store.CreateUser(context.Background(), entities.User{Email: "a@x.com", Username: "a1"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := store.CreateCreatorProfile(context.Background(), entities.CreatorProfile{UserID: user.ID}); err != nil {
		t.Fatalf("first profile failed: %v", err)
	}
	if _, err := store.CreateCreatorProfile(context.Background(), entities.CreatorProfile{UserID: user.ID}); err != domainerrors.ErrProfileExists {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	store := NewStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_ = store.CreateSession(context.Background(), entities.Session{Token: "live", ExpiresAt: now.Add(time.Hour)})
	_ = store.CreateSession(context.Background(), entities.Session{Token: "dead", ExpiresAt: now.Add(-time.Hour)})

	pruned, err := store.DeleteExpiredSessions(context.Background(), now)
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if pruned != 1 {
		t.Fatalf("expected 1 pruned session, got %d", pruned)
	}
	if _, found, _ := store.GetSession(context.Background(), "live"); !found {
		t.Fatal("live session must survive the sweep")
	}
	if _, found, _ := store.GetSession(context.Background(), "dead"); found {
		t.Fatal("expired session must be removed")
	}
}
