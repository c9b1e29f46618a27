package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/enums"
)

// The sqlite-backed test suites create their schema from these structs, so
// the tag set must stay migratable on sqlite, not just Postgres.
func TestModelsAutoMigrateOnSQLite(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := conn.AutoMigrate(&Identity{}, &Profile{}, &UserRole{}, &Store{}, &Rating{}); err != nil {
		t.Fatalf("expected models to migrate on sqlite, got: %v", err)
	}
}

func TestBeforeCreateAssignsIDs(t *testing.T) {
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&Identity{}, &UserRole{}, &Store{}, &Rating{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	identity := &Identity{Email: "id@example.com", PasswordHash: "x"}
	if err := conn.Create(identity).Error; err != nil {
		t.Fatalf("create identity: %v", err)
	}
	if identity.ID == uuid.Nil {
		t.Fatal("expected identity id to be assigned on create")
	}

	store := &Store{OwnerID: identity.ID, Name: "s", Email: "s@example.com"}
	if err := conn.Create(store).Error; err != nil {
		t.Fatalf("create store: %v", err)
	}
	if store.ID == uuid.Nil {
		t.Fatal("expected store id to be assigned on create")
	}

	role := &UserRole{UserID: identity.ID, Role: enums.RoleNormalUser}
	if err := conn.Create(role).Error; err != nil {
		t.Fatalf("create role: %v", err)
	}
	if role.ID == uuid.Nil {
		t.Fatal("expected role id to be assigned on create")
	}

	rating := &Rating{UserID: identity.ID, StoreID: store.ID, Rating: 4}
	if err := conn.Create(rating).Error; err != nil {
		t.Fatalf("create rating: %v", err)
	}
	if rating.ID == uuid.Nil {
		t.Fatal("expected rating id to be assigned on create")
	}
}
