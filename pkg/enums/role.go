package enums

import "fmt"

// Role describes the allowed values for the `role` column in user_roles.
type Role string

const (
	RoleSystemAdmin Role = "system_admin"
	RoleNormalUser  Role = "normal_user"
	RoleStoreOwner  Role = "store_owner"
)

var validRoles = []Role{
	RoleSystemAdmin,
	RoleNormalUser,
	RoleStoreOwner,
}

// IsValid reports whether the value matches the canonical role enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts the raw string to Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// Privilege orders roles so multi-role users resolve deterministically:
// a higher value always wins.
func (r Role) Privilege() int {
	switch r {
	case RoleSystemAdmin:
		return 3
	case RoleStoreOwner:
		return 2
	case RoleNormalUser:
		return 1
	default:
		return 0
	}
}
