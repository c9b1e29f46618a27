package auth

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// IdentityRepository handles identity persistence. It takes a *gorm.DB
// directly so the bootstrap can run it inside a transaction.
type IdentityRepository struct {
	db *gorm.DB
}

// NewIdentityRepository binds a GORM DB (or transaction) to identity lookups.
func NewIdentityRepository(db *gorm.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// FindByEmail loads an identity by its lowercased email.
func (r *IdentityRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	var identity models.Identity
	if err := r.db.WithContext(ctx).First(&identity, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// FindByID loads an identity by UUID.
func (r *IdentityRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Identity, error) {
	var identity models.Identity
	if err := r.db.WithContext(ctx).First(&identity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

// Create inserts the identity row.
func (r *IdentityRepository) Create(ctx context.Context, identity *models.Identity) error {
	return r.db.WithContext(ctx).Create(identity).Error
}
