package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/profiles"
	"github.com/storegrade/storegrade-backend/internal/roles"
	"github.com/storegrade/storegrade-backend/pkg/config"
	"github.com/storegrade/storegrade-backend/pkg/db"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	dbtypes "github.com/storegrade/storegrade-backend/pkg/db/types"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
	"github.com/storegrade/storegrade-backend/pkg/security"
)

// CreateUserInput carries the fields the signup bootstrap needs. Role
// defaults to normal_user when empty.
type CreateUserInput struct {
	Email    string
	Password string
	Metadata dbtypes.JSONMap
	Role     enums.Role
}

// BootstrapService creates an identity with its profile and default role
// in one transaction. Both public signup and privileged provisioning run
// through it so a user can never exist half-initialized.
type BootstrapService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*models.Identity, error)
	Register(ctx context.Context, req RegisterRequest) (*models.Identity, error)
}

// BootstrapServiceParams packages the dependencies for the signup flow.
type BootstrapServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type bootstrapService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewBootstrapService builds the signup bootstrap with the provided dependencies.
func NewBootstrapService(params BootstrapServiceParams) (BootstrapService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &bootstrapService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *bootstrapService) Register(ctx context.Context, req RegisterRequest) (*models.Identity, error) {
	metadata := dbtypes.JSONMap{}
	if strings.TrimSpace(req.Name) != "" {
		metadata["name"] = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Address) != "" {
		metadata["address"] = strings.TrimSpace(req.Address)
	}
	return s.CreateUser(ctx, CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Metadata: metadata,
	})
}

func (s *bootstrapService) CreateUser(ctx context.Context, input CreateUserInput) (*models.Identity, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}
	role := input.Role
	if role == "" {
		role = enums.RoleNormalUser
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}

	passwordHash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	identity := &models.Identity{
		Email:        email,
		PasswordHash: passwordHash,
		UserMetadata: input.Metadata,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		identityRepo := NewIdentityRepository(tx)
		profileRepo := profiles.NewRepository(tx)
		roleRepo := roles.NewRepository(tx)

		if _, err := identityRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
		}

		if err := identityRepo.Create(ctx, identity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create identity")
		}

		profile := &models.Profile{
			ID:      identity.ID,
			Name:    identity.UserMetadata.String("name", "Unknown"),
			Email:   email,
			Address: identity.UserMetadata.String("address", ""),
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create profile")
		}

		if _, err := roleRepo.Assign(ctx, identity.ID, role); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign role")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return identity, nil
}
