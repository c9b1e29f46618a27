package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/api/middleware"
	"github.com/storegrade/storegrade-backend/internal/authz"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

// actorFrom rebuilds the caller's actor from the request context. The
// admin bit is re-read from user_roles rather than trusted from the
// token, so a revoked admin loses access the next request.
func actorFrom(r *http.Request, checker *authz.Checker) (authz.Actor, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return authz.Anonymous, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return authz.Anonymous, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id")
	}

	admin := false
	if checker != nil {
		admin, err = checker.IsAdmin(r.Context(), id)
		if err != nil {
			return authz.Anonymous, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve role")
		}
	}
	return authz.Actor{ID: id, Admin: admin}, nil
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+param)
	}
	return id, nil
}
