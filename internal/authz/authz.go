// Package authz answers role questions and row-level access questions for
// every table the API serves. Predicates read user_roles through the
// privileged roles repository so evaluating a policy never recurses into
// another policy check.
package authz

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/storegrade/storegrade-backend/pkg/db/models"
	"github.com/storegrade/storegrade-backend/pkg/enums"
	pkgerrors "github.com/storegrade/storegrade-backend/pkg/errors"
)

// RoleReader is the privileged surface the checker needs. Implemented by
// internal/roles.Repository.
type RoleReader interface {
	HasRole(ctx context.Context, userID uuid.UUID, role enums.Role) (bool, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.UserRole, error)
}

// Checker evaluates role membership for a caller identity.
type Checker struct {
	roles RoleReader
}

// NewChecker builds a role checker over the privileged role reader.
func NewChecker(roles RoleReader) (*Checker, error) {
	if roles == nil {
		return nil, fmt.Errorf("role reader required")
	}
	return &Checker{roles: roles}, nil
}

// HasRole reports whether a user_roles row (caller, role) exists.
func (c *Checker) HasRole(ctx context.Context, caller uuid.UUID, role enums.Role) (bool, error) {
	if caller == uuid.Nil {
		return false, nil
	}
	return c.roles.HasRole(ctx, caller, role)
}

// IsAdmin is shorthand for the system_admin membership test policies lean on.
func (c *Checker) IsAdmin(ctx context.Context, caller uuid.UUID) (bool, error) {
	return c.HasRole(ctx, caller, enums.RoleSystemAdmin)
}

// CurrentRole resolves the caller's effective role. The schema tolerates
// multiple role rows per user; resolution is highest-privilege-wins so the
// answer is deterministic.
func (c *Checker) CurrentRole(ctx context.Context, caller uuid.UUID) (enums.Role, error) {
	rows, err := c.roles.FindByUser(ctx, caller)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user roles")
	}
	role, ok := ResolveRole(rows)
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "user has no role")
	}
	return role, nil
}

// ResolveRole picks the effective role from a role-row snapshot. Pure: the
// same snapshot always yields the same answer.
func ResolveRole(rows []models.UserRole) (enums.Role, bool) {
	var best enums.Role
	for _, row := range rows {
		if row.Role.Privilege() > best.Privilege() {
			best = row.Role
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}
