package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/storegrade/storegrade-backend/pkg/db/types"
	"gorm.io/gorm"
)

// Identity is the authentication record a profile hangs off. Signup metadata
// is kept verbatim so the registration bootstrap can default profile fields
// from it.
type Identity struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Email        string          `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	UserMetadata dbtypes.JSONMap `gorm:"column:user_metadata;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Identity) TableName() string {
	return "identities"
}

func (i *Identity) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
