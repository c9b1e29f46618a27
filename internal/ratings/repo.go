package ratings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// Repository handles rating persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to rating operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUserAndStore loads the caller's rating for a store, if any.
func (r *Repository) FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		First(&rating, "user_id = ? AND store_id = ?", userID, storeID).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Create inserts a rating row. A concurrent duplicate surfaces the
// unique violation untouched for the service to map.
func (r *Repository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

// UpdateValue overwrites the stored value in place.
func (r *Repository) UpdateValue(ctx context.Context, id uuid.UUID, value int) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, "id = ?", id).Error; err != nil {
		return nil, err
	}
	rating.Rating = value
	if err := r.db.WithContext(ctx).Save(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete removes the rating row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Rating{}, "id = ?", id).Error
}

// ListByStore returns every rating for a store, newest first, with the
// rater's profile name attached.
func (r *Repository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDetail, error) {
	var rows []RatingDetail
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.id, ratings.user_id, ratings.store_id, ratings.rating, ratings.created_at, ratings.updated_at, profiles.name AS rater_name").
		Joins("LEFT JOIN profiles ON profiles.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
