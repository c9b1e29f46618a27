package ratings

import (
	"time"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// RatingDTO is the transport shape for a single rating row.
type RatingDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingDetail is a rating joined with the rater's profile name, used on
// the public store page and the owner dashboard.
type RatingDetail struct {
	ID        uuid.UUID `gorm:"column:id" json:"id"`
	UserID    uuid.UUID `gorm:"column:user_id" json:"user_id"`
	StoreID   uuid.UUID `gorm:"column:store_id" json:"store_id"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	RaterName string    `gorm:"column:rater_name" json:"rater_name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func FromModel(r *models.Rating) *RatingDTO {
	if r == nil {
		return nil
	}
	return &RatingDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		StoreID:   r.StoreID,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
