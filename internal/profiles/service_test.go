package profiles

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

type stubProfileRepo struct {
	byID    map[uuid.UUID]*models.Profile
	updated *models.Profile
}

func (s *stubProfileRepo) FindVisibleByID(_ context.Context, actor authz.Actor, id uuid.UUID) (*models.Profile, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if !actor.Admin && actor.ID != p.ID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProfileRepo) ListVisible(_ context.Context, actor authz.Actor) ([]models.Profile, error) {
	var rows []models.Profile
	for _, p := range s.byID {
		if actor.Admin || actor.ID == p.ID {
			rows = append(rows, *p)
		}
	}
	return rows, nil
}

func (s *stubProfileRepo) Update(_ context.Context, profile *models.Profile) error {
	s.updated = profile
	return nil
}

func TestServiceGet_HiddenRowIsNotFound(t *testing.T) {
	target := &models.Profile{ID: uuid.New(), Name: "hidden"}
	svc, err := NewService(&stubProfileRepo{byID: map[uuid.UUID]*models.Profile{target.ID: target}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.Get(context.Background(), authz.Actor{ID: uuid.New()}, target.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdate_SelfOnly(t *testing.T) {
	target := &models.Profile{ID: uuid.New(), Name: "before"}
	repo := &stubProfileRepo{byID: map[uuid.UUID]*models.Profile{target.ID: target}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	name := "after"
	got, err := svc.Update(context.Background(), authz.Actor{ID: target.ID}, target.ID, UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "after" || repo.updated == nil || repo.updated.Name != "after" {
		t.Fatalf("expected name persisted, got %+v", got)
	}

	_, err = svc.Update(context.Background(), authz.Actor{ID: uuid.New()}, target.ID, UpdateProfileInput{Name: &name})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign profile, got %v", err)
	}
}

func TestServiceUpdate_AdminMayEditAnyProfile(t *testing.T) {
	target := &models.Profile{ID: uuid.New(), Name: "before"}
	repo := &stubProfileRepo{byID: map[uuid.UUID]*models.Profile{target.ID: target}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	addr := "1 Admin Way"
	got, err := svc.Update(context.Background(), authz.Actor{ID: uuid.New(), Admin: true}, target.ID, UpdateProfileInput{Address: &addr})
	if err != nil {
		t.Fatalf("Update as admin: %v", err)
	}
	if got.Address != addr {
		t.Fatalf("expected address updated, got %q", got.Address)
	}
}
