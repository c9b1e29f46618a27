package models

import (
	"time"

	"github.com/google/uuid"
)

// StoreRating maps the store_ratings view: one row per store with the
// always-fresh aggregate. Read only; never AutoMigrated.
type StoreRating struct {
	StoreID       uuid.UUID `gorm:"column:store_id" json:"store_id"`
	OwnerID       uuid.UUID `gorm:"column:owner_id" json:"owner_id"`
	Name          string    `gorm:"column:name" json:"name"`
	Email         string    `gorm:"column:email" json:"email"`
	Address       string    `gorm:"column:address" json:"address"`
	AverageRating float64   `gorm:"column:average_rating" json:"average_rating"`
	TotalRatings  int64     `gorm:"column:total_ratings" json:"total_ratings"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

func (StoreRating) TableName() string {
	return "store_ratings"
}
