package profiles

import (
	"time"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// ProfileDTO is the transport shape for a profile row.
type ProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateProfileInput captures the mutable profile fields.
type UpdateProfileInput struct {
	Name    *string
	Email   *string
	Address *string
}

func FromModel(p *models.Profile) *ProfileDTO {
	if p == nil {
		return nil
	}
	return &ProfileDTO{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
