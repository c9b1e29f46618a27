// Package provisioning implements out-of-band user creation for operators
// holding the service key. It reuses the signup bootstrap, then overwrites
// the default role when one is requested.
package provisioning

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/internal/auth"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	dbtypes "github.com/storegrade/storegrade-backend/pkg/db/types"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

// CreateUserInput is the privileged creation payload.
type CreateUserInput struct {
	Email    string
	Password string
	Metadata dbtypes.JSONMap
	Role     string
}

// ProvisionedUser is the wire view of a created identity.
type ProvisionedUser struct {
	ID           uuid.UUID       `json:"id"`
	Email        string          `json:"email"`
	UserMetadata dbtypes.JSONMap `json:"user_metadata"`
}

type bootstrapper interface {
	CreateUser(ctx context.Context, input auth.CreateUserInput) (*models.Identity, error)
}

type roleReplacer interface {
	Replace(ctx context.Context, userID uuid.UUID, role enums.Role) error
}

// Service creates fully-initialized users on behalf of operators.
type Service interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*ProvisionedUser, error)
}

type service struct {
	bootstrap bootstrapper
	roles     roleReplacer
}

// NewService wires the provisioning flow over the signup bootstrap.
func NewService(bootstrap bootstrapper, roles roleReplacer) (Service, error) {
	if bootstrap == nil {
		return nil, fmt.Errorf("bootstrap service required")
	}
	if roles == nil {
		return nil, fmt.Errorf("role repository required")
	}
	return &service{bootstrap: bootstrap, roles: roles}, nil
}

func (s *service) CreateUser(ctx context.Context, input CreateUserInput) (*ProvisionedUser, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	requested := enums.RoleNormalUser
	if input.Role != "" {
		parsed, err := enums.ParseRole(input.Role)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		requested = parsed
	}

	identity, err := s.bootstrap.CreateUser(ctx, auth.CreateUserInput{
		Email:    email,
		Password: input.Password,
		Metadata: input.Metadata,
	})
	if err != nil {
		return nil, err
	}

	if requested != enums.RoleNormalUser {
		// identity exists at this point; a failed overwrite is reported
		// as-is and never rolled back
		if err := s.roles.Replace(ctx, identity.ID, requested); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "overwrite role")
		}
	}

	return &ProvisionedUser{
		ID:           identity.ID,
		Email:        identity.Email,
		UserMetadata: identity.UserMetadata,
	}, nil
}
