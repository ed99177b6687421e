package entity

import "slices"

// Role represents what a logged-in principal may do.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleFarmer   Role = "farmer"
	// RoleAdmin manages orders.
	RoleAdmin Role = "admin"
	// RoleFieldAdmin manages orders, soil tests and the admin inbox.
	RoleFieldAdmin Role = "field_admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleFarmer, RoleAdmin, RoleFieldAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin is true for both console roles.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleFieldAdmin
}

// RoleForLoginType maps a stored login type to a role.
func RoleForLoginType(lt LoginType) Role {
	if lt == LoginTypeFarmer {
		return RoleFarmer
	}

	return RoleCustomer
}

// Principal identifies the caller of a request.
type Principal struct {
	Username string
	Role     Role
}

// HasRole reports whether the principal holds any of roles.
func (p *Principal) HasRole(roles ...Role) bool {
	return p != nil && slices.Contains(roles, p.Role)
}
