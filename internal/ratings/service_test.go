package ratings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/pkg/db/models"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

type stubRatingRepo struct {
	existing  *models.Rating
	createErr error
	created   *models.Rating
	updated   *models.Rating
	deletedID uuid.UUID
}

func (s *stubRatingRepo) FindByUserAndStore(_ context.Context, userID, storeID uuid.UUID) (*models.Rating, error) {
	if s.existing != nil && s.existing.UserID == userID && s.existing.StoreID == storeID {
		cp := *s.existing
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRatingRepo) Create(_ context.Context, rating *models.Rating) error {
	if s.createErr != nil {
		return s.createErr
	}
	rating.ID = uuid.New()
	s.created = rating
	return nil
}

func (s *stubRatingRepo) UpdateValue(_ context.Context, id uuid.UUID, value int) (*models.Rating, error) {
	if s.existing == nil || s.existing.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s.existing
	cp.Rating = value
	s.updated = &cp
	return &cp, nil
}

func (s *stubRatingRepo) Delete(_ context.Context, id uuid.UUID) error {
	s.deletedID = id
	return nil
}

func (s *stubRatingRepo) ListByStore(_ context.Context, _ uuid.UUID) ([]RatingDetail, error) {
	return nil, nil
}

type stubStoreFinder struct {
	stores map[uuid.UUID]*models.Store
}

func (s *stubStoreFinder) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	store, ok := s.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return store, nil
}

func newFixture(existing *models.Rating) (*stubRatingRepo, *stubStoreFinder, uuid.UUID) {
	storeID := uuid.New()
	if existing != nil {
		existing.StoreID = storeID
	}
	repo := &stubRatingRepo{existing: existing}
	finder := &stubStoreFinder{stores: map[uuid.UUID]*models.Store{
		storeID: {ID: storeID, OwnerID: uuid.New(), Name: "corner"},
	}}
	return repo, finder, storeID
}

func code(t *testing.T, err error) pkgerrors.Code {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected app error, got %v", err)
	}
	return typed.Code()
}

func TestSubmit_InsertsWhenMissing(t *testing.T) {
	repo, finder, storeID := newFixture(nil)
	svc, err := NewService(repo, finder)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	userID := uuid.New()
	dto, err := svc.Submit(context.Background(), authz.Actor{ID: userID}, storeID, 4)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.Rating != 4 || dto.UserID != userID {
		t.Fatalf("unexpected dto %+v", dto)
	}
	if repo.created == nil {
		t.Fatal("expected insert path")
	}
}

func TestSubmit_UpdatesExistingInPlace(t *testing.T) {
	userID := uuid.New()
	existing := &models.Rating{ID: uuid.New(), UserID: userID, Rating: 4}
	repo, finder, storeID := newFixture(existing)
	svc, _ := NewService(repo, finder)

	dto, err := svc.Submit(context.Background(), authz.Actor{ID: userID}, storeID, 2)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if dto.Rating != 2 || repo.updated == nil || repo.created != nil {
		t.Fatalf("expected update path, got dto=%+v created=%v", dto, repo.created)
	}
}

func TestSubmit_RejectsOutOfRange(t *testing.T) {
	repo, finder, storeID := newFixture(nil)
	svc, _ := NewService(repo, finder)

	for _, v := range []int{0, 6, -1} {
		_, err := svc.Submit(context.Background(), authz.Actor{ID: uuid.New()}, storeID, v)
		if code(t, err) != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %d, got %v", v, err)
		}
	}
}

func TestSubmit_UnknownStoreIsNotFound(t *testing.T) {
	repo, finder, _ := newFixture(nil)
	svc, _ := NewService(repo, finder)

	_, err := svc.Submit(context.Background(), authz.Actor{ID: uuid.New()}, uuid.New(), 3)
	if code(t, err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSubmit_AnonymousIsUnauthorized(t *testing.T) {
	repo, finder, storeID := newFixture(nil)
	svc, _ := NewService(repo, finder)

	_, err := svc.Submit(context.Background(), authz.Anonymous, storeID, 3)
	if code(t, err) != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSubmit_InsertRaceMapsToConflict(t *testing.T) {
	repo, finder, storeID := newFixture(nil)
	repo.createErr = errors.New(`duplicate key value violates unique constraint "ratings_user_id_store_id_key"`)
	svc, _ := NewService(repo, finder)

	_, err := svc.Submit(context.Background(), authz.Actor{ID: uuid.New()}, storeID, 5)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != repo.createErr.Error() {
		t.Fatalf("expected constraint message surfaced verbatim, got %q", typed.Message())
	}
}

func TestDelete_OwnRatingOnly(t *testing.T) {
	userID := uuid.New()
	existing := &models.Rating{ID: uuid.New(), UserID: userID, Rating: 4}
	repo, finder, storeID := newFixture(existing)
	svc, _ := NewService(repo, finder)

	if err := svc.Delete(context.Background(), authz.Actor{ID: userID}, storeID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if repo.deletedID != existing.ID {
		t.Fatalf("expected delete of %v, got %v", existing.ID, repo.deletedID)
	}

	err := svc.Delete(context.Background(), authz.Actor{ID: uuid.New()}, storeID)
	if code(t, err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign rating, got %v", err)
	}
}
