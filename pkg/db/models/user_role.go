package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	"gorm.io/gorm"
)

// UserRole assigns a role to a user. Uniqueness is per (user, role) pair, so
// the schema tolerates multiple roles per user; resolution order lives in the
// authz package.
type UserRole struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:user_roles_user_id_role_key"`
	Role      enums.Role `gorm:"column:role;type:app_role;not null;uniqueIndex:user_roles_user_id_role_key"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (r *UserRole) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
