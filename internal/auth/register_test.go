package auth

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/config"
	"github.com/storegrade/storegrade-backend/pkg/db"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	dbtypes "github.com/storegrade/storegrade-backend/pkg/db/types"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
	"github.com/storegrade/storegrade-backend/pkg/security"
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?cache=shared&_pragma=foreign_keys(1)",
	}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := client.DB().AutoMigrate(&models.Identity{}, &models.Profile{}, &models.UserRole{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newBootstrap(t *testing.T, client *db.Client) BootstrapService {
	t.Helper()

	svc, err := NewBootstrapService(BootstrapServiceParams{
		DB:             client,
		PasswordConfig: config.PasswordConfig{ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32},
	})
	if err != nil {
		t.Fatalf("NewBootstrapService: %v", err)
	}
	return svc
}

func TestRegister_BootstrapsProfileAndRole(t *testing.T) {
	client := newTestClient(t)
	svc := newBootstrap(t, client)
	ctx := context.Background()

	identity, err := svc.Register(ctx, RegisterRequest{
		Email:    "Ada@Example.com",
		Password: "correct horse",
		Name:     "Ada Lovelace",
		Address:  "12 Analytical Way",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if identity.Email != "ada@example.com" {
		t.Fatalf("expected lowercased email, got %q", identity.Email)
	}

	ok, err := security.VerifyPassword("correct horse", identity.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("expected stored hash to verify, ok=%v err=%v", ok, err)
	}

	var profile models.Profile
	if err := client.DB().First(&profile, "id = ?", identity.ID).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.Name != "Ada Lovelace" || profile.Address != "12 Analytical Way" || profile.Email != "ada@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	var role models.UserRole
	if err := client.DB().First(&role, "user_id = ?", identity.ID).Error; err != nil {
		t.Fatalf("load role: %v", err)
	}
	if role.Role != enums.RoleNormalUser {
		t.Fatalf("expected normal_user role, got %q", role.Role)
	}
}

func TestRegister_MetadataDefaults(t *testing.T) {
	client := newTestClient(t)
	svc := newBootstrap(t, client)

	identity, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "bare@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	var profile models.Profile
	if err := client.DB().First(&profile, "id = ?", identity.ID).Error; err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if profile.Name != "Unknown" || profile.Address != "" {
		t.Fatalf("expected default name/address, got %+v", profile)
	}
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	client := newTestClient(t)
	svc := newBootstrap(t, client)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "correct horse"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	_, err := svc.Register(ctx, RegisterRequest{Email: "DUP@example.com", Password: "other password"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&models.Identity{}).Where("email = ?", "dup@example.com").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single identity, got %d", count)
	}
}

func TestCreateUser_FailedRoleAssignRollsBackIdentity(t *testing.T) {
	client := newTestClient(t)
	svc := newBootstrap(t, client)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{
		Email:    "roll@example.com",
		Password: "correct horse",
		Metadata: dbtypes.JSONMap{"name": "Roll Back"},
		Role:     enums.Role("made_up"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	err = client.DB().First(&models.Identity{}, "email = ?", "roll@example.com").Error
	if err != gorm.ErrRecordNotFound {
		t.Fatalf("expected no identity persisted, got %v", err)
	}
}
