package profiles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// Repository exposes profile persistence. Every read goes through the
// caller's read scope so row visibility matches the policy table.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a profiles repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a profile row. Only the registration bootstrap and admin
// provisioning reach this.
func (r *Repository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// FindVisibleByID loads the profile when the actor's scope permits it;
// a hidden row reads exactly like a missing one.
func (r *Repository) FindVisibleByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Scopes(authz.ProfileReadScope(actor)).
		First(&profile, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListVisible returns every profile the actor may see.
func (r *Repository) ListVisible(ctx context.Context, actor authz.Actor) ([]models.Profile, error) {
	var rows []models.Profile
	err := r.db.WithContext(ctx).
		Scopes(authz.ProfileReadScope(actor)).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided profile row. updated_at is maintained by GORM
// and, on Postgres, re-asserted by the table trigger.
func (r *Repository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
