package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/api/responses"
	"github.com/storegrade/storegrade-backend/api/validators"
	"github.com/storegrade/storegrade-backend/internal/authz"
	"github.com/storegrade/storegrade-backend/internal/profiles"
	"github.com/storegrade/storegrade-backend/internal/stores"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
	"github.com/storegrade/storegrade-backend/pkg/logger"
)

type roleWriter interface {
	Replace(ctx context.Context, userID uuid.UUID, role enums.Role) error
}

type storeCreateRequest struct {
	OwnerID uuid.UUID `json:"owner_id" validate:"required"`
	Name    string    `json:"name" validate:"required,min=1,max=200"`
	Email   string    `json:"email" validate:"required,email"`
	Address string    `json:"address" validate:"omitempty,max=400"`
}

type roleUpdateRequest struct {
	Role string `json:"role" validate:"required"`
}

// AdminUserRow pairs a profile with its resolved role.
type AdminUserRow struct {
	Profile profiles.ProfileDTO `json:"profile"`
	Role    enums.Role          `json:"role"`
}

// AdminStoreList returns the full store directory for the admin console.
func AdminStoreList(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return StoreList(svc, logg)
}

// AdminStoreCreate registers a new store under the given owner.
func AdminStoreCreate(svc stores.Service, checker *authz.Checker, logg *logger.Logger) http.HandlerFunc {
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

		var body storeCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), actor, stores.CreateStoreInput{
			OwnerID: body.OwnerID,
			Name:    body.Name,
			Email:   body.Email,
			Address: body.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

// AdminStoreDelete removes a store and its ratings.
func AdminStoreDelete(svc stores.Service, checker *authz.Checker, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// AdminUserList returns every profile paired with its resolved role.
func AdminUserList(svc profiles.Service, roleReader authz.RoleReader, checker *authz.Checker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || roleReader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "profile service unavailable"))
			return
		}

		actor, err := actorFrom(r, checker)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		users := make([]AdminUserRow, 0, len(rows))
		for _, profile := range rows {
			roleRows, err := roleReader.FindByUser(r.Context(), profile.ID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load roles"))
				return
			}
			role, _ := authz.ResolveRole(roleRows)
			users = append(users, AdminUserRow{Profile: profile, Role: role})
		}

		responses.WriteSuccess(w, users)
	}
}

// AdminUserRoleUpdate overwrites a user's role assignment.
func AdminUserRoleUpdate(roleRepo roleWriter, checker *authz.Checker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if roleRepo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "role repository unavailable"))
			return
		}

		actor, err := actorFrom(r, checker)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !authz.CanManageUserRoles(actor) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
			return
		}

		userID, err := pathUUID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body roleUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid role"))
			return
		}

		if err := roleRepo.Replace(r.Context(), userID, role); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace role"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"user_id": userID.String(), "role": string(role)})
	}
}
