package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	ListView(ctx context.Context, search string) ([]models.StoreRating, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*models.StoreRating, error)
	FindViewByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.StoreRating, error)
	Update(ctx context.Context, store *models.Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes store operations. Reads are public; writes are
// evaluated against the caller's actor.
type Service interface {
	List(ctx context.Context, search string) ([]StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error)
	Create(ctx context.Context, actor authz.Actor, input CreateStoreInput) (*StoreDTO, error)
	Update(ctx context.Context, actor authz.Actor, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, actor authz.Actor, storeID uuid.UUID) error
}

type service struct {
	repo storeRepository
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]StoreDTO, error) {
	rows, err := s.repo.ListView(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	dtos := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromView(&rows[i]))
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	row, err := s.repo.FindViewByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromView(row), nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]StoreDTO, error) {
	rows, err := s.repo.FindViewByOwner(ctx, ownerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list owner stores")
	}
	dtos := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromView(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, actor authz.Actor, input CreateStoreInput) (*StoreDTO, error) {
	if !authz.CanInsertStore(actor) {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	if input.OwnerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner_id is required")
	}

	store := input.ToModel()
	if err := s.repo.Create(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	// the view row exists as soon as the store does, with a zero aggregate
	return s.GetByID(ctx, store.ID)
}

func (s *service) Update(ctx context.Context, actor authz.Actor, storeID uuid.UUID, input UpdateStoreInput) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if !authz.CanUpdateStore(actor, store.OwnerID) {
		// unwritable rows look exactly like missing rows
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	if input.OwnerID != nil {
		store.OwnerID = *input.OwnerID
	}
	if input.Name != nil {
		store.Name = *input.Name
	}
	if input.Email != nil {
		store.Email = *input.Email
	}
	if input.Address != nil {
		store.Address = *input.Address
	}

	if err := s.repo.Update(ctx, store); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store")
	}
	return s.GetByID(ctx, store.ID)
}

func (s *service) Delete(ctx context.Context, actor authz.Actor, storeID uuid.UUID) error {
	if !authz.CanDeleteStore(actor) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}

	if _, err := s.repo.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	if err := s.repo.Delete(ctx, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}
