package authz

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Actor identifies the caller a policy is evaluated for. Admin is resolved
// from user_roles at request time, never trusted from the token.
type Actor struct {
	ID    uuid.UUID
	Admin bool
}

// Anonymous is the actor for unauthenticated requests: only public scopes
// yield rows for it.
var Anonymous = Actor{}

// ProfileReadScope narrows a profiles query to what the actor may see:
// admins see everything, everyone else their own row. Denial shows up as an
// empty result, never an error.
func ProfileReadScope(actor Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if actor.Admin {
			return tx
		}
		return tx.Where("id = ?", actor.ID)
	}
}

// CanUpdateProfile allows the row owner and admins.
func CanUpdateProfile(actor Actor, rowID uuid.UUID) bool {
	return actor.Admin || (actor.ID != uuid.Nil && actor.ID == rowID)
}

// CanInsertProfile restricts direct profile inserts to admins; everyone else
// gets a profile only through the registration bootstrap.
func CanInsertProfile(actor Actor) bool {
	return actor.Admin
}

// UserRoleReadScope narrows user_roles reads: admins unfiltered, others see
// their own assignments.
func UserRoleReadScope(actor Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if actor.Admin {
			return tx
		}
		return tx.Where("user_id = ?", actor.ID)
	}
}

// CanManageUserRoles restricts all user_roles writes to admins.
func CanManageUserRoles(actor Actor) bool {
	return actor.Admin
}

// StoreReadScope is unconditional: the store directory is public.
func StoreReadScope(Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx }
}

// CanUpdateStore allows the assigned owner and admins. Nothing here pins
// individual columns, so an update may touch any field including owner_id,
// which is how ownership transfers happen.
func CanUpdateStore(actor Actor, ownerID uuid.UUID) bool {
	return actor.Admin || (actor.ID != uuid.Nil && actor.ID == ownerID)
}

// CanInsertStore and CanDeleteStore are admin-only.
func CanInsertStore(actor Actor) bool {
	return actor.Admin
}

func CanDeleteStore(actor Actor) bool {
	return actor.Admin
}

// RatingReadScope is unconditional: ratings are public.
func RatingReadScope(Actor) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB { return tx }
}

// CanInsertRating allows a caller to write only ratings keyed to itself.
func CanInsertRating(actor Actor, rowUserID uuid.UUID) bool {
	return actor.ID != uuid.Nil && actor.ID == rowUserID
}

// CanMutateRating gates update/delete to the submitting user. Admins get no
// override here; a rating always speaks for the account that cast it.
func CanMutateRating(actor Actor, rowUserID uuid.UUID) bool {
	return actor.ID != uuid.Nil && actor.ID == rowUserID
}
