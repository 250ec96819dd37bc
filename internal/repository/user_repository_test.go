package repository

import (
	"testing"
	"time"

	"github.com/ebookstore-next/internal/constants"
)

func TestUserLookupAndList(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)
	user := createTestUser(t, db, "fatma@example.com")
	createTestUser(t, db, "can@example.com")

	got, err := repo.GetByEmail("  FATMA@example.com ")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if got == nil || got.ID != user.ID {
		t.Fatalf("email lookup should normalize case")
	}

	now := time.Now()
	if err := repo.TouchLastLogin(user.ID, now); err != nil {
		t.Fatalf("touch last login failed: %v", err)
	}
	got, err = repo.GetByID(user.ID)
	if err != nil || got.LastLoginAt == nil {
		t.Fatalf("last login should be recorded: %v", err)
	}

	users, total, err := repo.List(UserListFilter{Keyword: "can@", Role: constants.RoleUser})
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if total != 1 || users[0].Email != "can@example.com" {
		t.Fatalf("unexpected user list: total=%d", total)
	}
}
