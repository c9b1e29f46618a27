package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// StoreDTO exposes store data plus its rating aggregate in API responses.
type StoreDTO struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	AverageRating float64   `json:"average_rating"`
	TotalRatings  int64     `json:"total_ratings"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	OwnerID uuid.UUID
	Name    string
	Email   string
	Address string
}

// UpdateStoreInput captures the mutable store fields. OwnerID is
// included: an owner handing the store to another user is permitted.
type UpdateStoreInput struct {
	OwnerID *uuid.UUID
	Name    *string
	Email   *string
	Address *string
}

// FromView maps a store_ratings row into a DTO.
func FromView(v *models.StoreRating) *StoreDTO {
	if v == nil {
		return nil
	}
	return &StoreDTO{
		ID:            v.StoreID,
		OwnerID:       v.OwnerID,
		Name:          v.Name,
		Email:         v.Email,
		Address:       v.Address,
		AverageRating: v.AverageRating,
		TotalRatings:  v.TotalRatings,
		CreatedAt:     v.CreatedAt,
	}
}

// ToModel prepares the GORM model from creation input.
func (c CreateStoreInput) ToModel() *models.Store {
	return &models.Store{
		OwnerID: c.OwnerID,
		Name:    c.Name,
		Email:   c.Email,
		Address: c.Address,
	}
}
