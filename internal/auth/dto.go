package auth

import (
	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
	"github.com/storegrade/storegrade-backend/pkg/enums"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest contains the public signup payload. Name and address
// feed the bootstrapped profile; missing values fall back to the
// profile column defaults.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name,omitempty"`
	Address  string `json:"address,omitempty"`
}

// RefreshRequest carries the refresh token pair for rotation.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserSummary is the identity view returned with a token pair.
type UserSummary struct {
	ID    uuid.UUID  `json:"id"`
	Email string     `json:"email"`
	Name  string     `json:"name"`
	Role  enums.Role `json:"role"`
}

// LoginResponse contains the tokens and user produced by a successful login.
type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserSummary `json:"user"`
}

// RefreshResponse carries the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func summaryFromIdentity(identity *models.Identity, role enums.Role) UserSummary {
	return UserSummary{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.UserMetadata.String("name", "Unknown"),
		Role:  role,
	}
}
