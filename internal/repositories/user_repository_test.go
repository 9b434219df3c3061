package repositories

import (
	"context"
	"testing"

	"intervue/internal/models"
	"intervue/internal/testhelpers"
)

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(testhelpers.SetupTestDB(t))
	ctx := context.Background()

	user := &models.User{Username: "alice", PasswordHash: "hash"}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user ID")
	}

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, user.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Username != "alice" {
			t.Fatalf("expected alice, got %s", got.Username)
		}
	})

	t.Run("get by username", func(t *testing.T) {
		got, err := repo.GetByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != user.ID {
			t.Fatalf("expected id %s, got %s", user.ID, got.ID)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, "missing"); err != ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
		if _, err := repo.GetByUsername(ctx, "nobody"); err != ErrUserNotFound {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := &models.User{Username: "alice", PasswordHash: "hash"}
		if err := repo.Create(ctx, dup); err == nil {
			t.Fatalf("expected unique constraint violation")
		}
	})
}
