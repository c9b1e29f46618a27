package stores

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
)

// Repository handles store persistence. Base rows live in `stores`;
// aggregate reads go through the `store_ratings` view.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new store row.
func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

// FindByID loads a store by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// ListView returns every store with its rating aggregate, optionally
// filtered by a case-insensitive name/address match.
func (r *Repository) ListView(ctx context.Context, search string) ([]models.StoreRating, error) {
	q := r.db.WithContext(ctx).Model(&models.StoreRating{})
	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name LIKE ? OR address LIKE ?", pattern, pattern)
	}
	var rows []models.StoreRating
	if err := q.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindViewByID loads a single store with its aggregate.
func (r *Repository) FindViewByID(ctx context.Context, id uuid.UUID) (*models.StoreRating, error) {
	var row models.StoreRating
	if err := r.db.WithContext(ctx).First(&row, "store_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindViewByOwner returns aggregate rows for every store the owner holds.
func (r *Repository) FindViewByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.StoreRating, error) {
	var rows []models.StoreRating
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided store row.
func (r *Repository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

// Delete removes the store and, via FK cascade, its ratings.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, "id = ?", id).Error
}
