package roles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
	"github.com/storegrade/storegrade-backend/pkg/enums"
)

// Repository is the privileged accessor for user_roles. It is deliberately
// unfiltered: row policies consult it to answer role questions, so it must
// never be routed back through the policy layer itself.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to role persistence.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Assign inserts a role row for the user. A duplicate (user, role) pair
// surfaces the unique violation untouched.
func (r *Repository) Assign(ctx context.Context, userID uuid.UUID, role enums.Role) (*models.UserRole, error) {
	row := &models.UserRole{UserID: userID, Role: role}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Replace swaps every role the user holds for the single provided role.
func (r *Repository) Replace(ctx context.Context, userID uuid.UUID, role enums.Role) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRole{UserID: userID, Role: role}).Error
	})
}

// FindByUser returns every role row held by the user.
func (r *Repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.UserRole, error) {
	var rows []models.UserRole
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// HasRole reports whether a (user, role) row exists.
func (r *Repository) HasRole(ctx context.Context, userID uuid.UUID, role enums.Role) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
