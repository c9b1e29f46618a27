package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/api/responses"
	"github.com/storegrade/storegrade-backend/api/validators"
	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/internal/ratings"
	"github.com/storegrade/storegrade-backend/internal/stores"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
	"github.com/storegrade/storegrade-backend/pkg/logger"
)

type storeUpdateRequest struct {
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
	Name    *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email   *string    `json:"email,omitempty" validate:"omitempty,email"`
	Address *string    `json:"address,omitempty" validate:"omitempty,max=400"`
}

func (r storeUpdateRequest) toInput() stores.UpdateStoreInput {
	return stores.UpdateStoreInput{
		OwnerID: r.OwnerID,
		Name:    r.Name,
		Email:   r.Email,
		Address: r.Address,
	}
}

// StoreList is the public store directory with rating aggregates.
func StoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		search := validators.SanitizeString(r.URL.Query().Get("search"), 200)
		rows, err := svc.List(r.Context(), search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// StoreDetail returns a single store with its aggregate.
func StoreDetail(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		id, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreUpdate lets the owner (or an admin) mutate a store row.
func StoreUpdate(svc stores.Service, checker *authz.Checker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		actor, err := actorFrom(r, checker)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := pathUUID(r, "storeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Update(r.Context(), actor, id, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// OwnerStoreDashboard is an owned store with its per-rater detail.
type OwnerStoreDashboard struct {
	Store   stores.StoreDTO        `json:"store"`
	Ratings []ratings.RatingDetail `json:"ratings"`
}

// OwnerStores returns the caller's stores with aggregates and rater detail.
func OwnerStores(storeSvc stores.Service, ratingSvc ratings.Service, checker *authz.Checker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if storeSvc == nil || ratingSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "store service unavailable"))
			return
		}

		actor, err := actorFrom(r, checker)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		owned, err := storeSvc.ListByOwner(r.Context(), actor.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dashboards := make([]OwnerStoreDashboard, 0, len(owned))
		for _, store := range owned {
			detail, err := ratingSvc.ListByStore(r.Context(), store.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			dashboards = append(dashboards, OwnerStoreDashboard{Store: store, Ratings: detail})
		}

		responses.WriteSuccess(w, dashboards)
	}
}
