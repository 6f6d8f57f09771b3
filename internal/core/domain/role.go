package domain

import "strings"

// Role is the global permission tier of a user. The set is closed.
type Role string

const (
	RoleGeneral Role = "GENERAL"
	RoleSenior  Role = "SENIOR"
	RoleAdmin   Role = "ADMIN"
)

// AllRoles lists the valid roles in ascending rank.
var AllRoles = []Role{RoleGeneral, RoleSenior, RoleAdmin}

// Rank maps a role to its position in the hierarchy. Unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleGeneral:
		return 1
	case RoleSenior:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// Satisfies reports whether r meets the required minimum role.
// An unknown role on either side never satisfies.
func (r Role) Satisfies(required Role) bool {
	if !r.IsValid() || !required.IsValid() {
		return false
	}
	return r.Rank() >= required.Rank()
}

// ParseRole converts user input to a Role, case-insensitively.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	return role, role.IsValid()
}
