package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the user-visible account data. Its primary key equals the
// identity id; the row is created exactly once by the registration bootstrap.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text;not null;default:'Unknown'"`
	Email     string    `gorm:"type:text;not null"`
	Address   string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
