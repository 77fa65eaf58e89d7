// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleCustomer indicates a regular shopper account.
	RoleCustomer Role = "customer"
	// RoleSeller indicates a seller account.
	RoleSeller Role = "seller"
	// RoleAdmin indicates an administrator account.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole converts a string to a Role. The boolean reports whether the
// input named a known role.
func ParseRole(s string) (Role, bool) {
	role := Role(s)

	return role, role.IsValid()
}
