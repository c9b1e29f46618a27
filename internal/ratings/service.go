package ratings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/pkg/db"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

// ratingUniqueConstraint backs the one-rating-per-store guarantee.
const ratingUniqueConstraint = "ratings_user_id_store_id_key"

type ratingRepository interface {
	FindByUserAndStore(ctx context.Context, userID, storeID uuid.UUID) (*models.Rating, error)
	Create(ctx context.Context, rating *models.Rating) error
	UpdateValue(ctx context.Context, id uuid.UUID, value int) (*models.Rating, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDetail, error)
}

type storeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes rating operations. Submission is update-else-insert;
// the unique index is the real guarantor under races.
type Service interface {
	Submit(ctx context.Context, actor authz.Actor, storeID uuid.UUID, value int) (*RatingDTO, error)
	Delete(ctx context.Context, actor authz.Actor, storeID uuid.UUID) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDetail, error)
}

type service struct {
	repo   ratingRepository
	stores storeFinder
}

// NewService builds a rating service over the provided repositories.
func NewService(repo ratingRepository, stores storeFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rating repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store finder required")
	}
	return &service{repo: repo, stores: stores}, nil
}

func (s *service) Submit(ctx context.Context, actor authz.Actor, storeID uuid.UUID, value int) (*RatingDTO, error) {
	if actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if value < 1 || value > 5 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	existing, err := s.repo.FindByUserAndStore(ctx, actor.ID, storeID)
	switch {
	case err == nil:
		if !authz.CanMutateRating(actor, existing.UserID) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rating not found")
		}
		updated, err := s.repo.UpdateValue(ctx, existing.ID, value)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rating")
		}
		return FromModel(updated), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fall through to insert
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
	}

	rating := &models.Rating{UserID: actor.ID, StoreID: storeID, Rating: value}
	if !authz.CanInsertRating(actor, rating.UserID) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot rate on another user's behalf")
	}
	if err := s.repo.Create(ctx, rating); err != nil {
		if db.IsUniqueViolation(err, ratingUniqueConstraint) {
			msg := pkgerrors.ConstraintMessage(err)
			if msg == "" {
				msg = err.Error()
			}
			return nil, pkgerrors.New(pkgerrors.CodeConflict, msg)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rating")
	}
	return FromModel(rating), nil
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, storeID uuid.UUID) error {
	if actor.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	rating, err := s.repo.FindByUserAndStore(ctx, actor.ID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "rating not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rating")
	}
	if !authz.CanMutateRating(actor, rating.UserID) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "rating not found")
	}

	if err := s.repo.Delete(ctx, rating.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete rating")
	}
	return nil
}

func (s *service) ListByStore(ctx context.Context, storeID uuid.UUID) ([]RatingDetail, error) {
	rows, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ratings")
	}
	return rows, nil
}
