package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

type profileRepository interface {
	FindVisibleByID(ctx context.Context, actor authz.Actor, id uuid.UUID) (*models.Profile, error)
	ListVisible(ctx context.Context, actor authz.Actor) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// Service exposes profile operations evaluated against the caller's actor.
type Service interface {
	Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*ProfileDTO, error)
	List(ctx context.Context, actor authz.Actor) ([]ProfileDTO, error)
	Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error)
}

type service struct {
	repo profileRepository
}

// NewService builds a profile service over the provided repository.
func NewService(repo profileRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profile repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, actor authz.Actor, id uuid.UUID) (*ProfileDTO, error) {
	profile, err := s.repo.FindVisibleByID(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return FromModel(profile), nil
}

func (s *service) List(ctx context.Context, actor authz.Actor) ([]ProfileDTO, error) {
	rows, err := s.repo.ListVisible(ctx, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list profiles")
	}
	dtos := make([]ProfileDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Update(ctx context.Context, actor authz.Actor, id uuid.UUID, input UpdateProfileInput) (*ProfileDTO, error) {
	if !authz.CanUpdateProfile(actor, id) {
		// unwritable rows look exactly like missing rows
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}

	profile, err := s.repo.FindVisibleByID(ctx, actor, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Address != nil {
		profile.Address = *input.Address
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}
	return FromModel(profile), nil
}
