package model

// Role is the account's position in the hierarchy:
// user < admin / d-admin (peers) < power.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleDAdmin Role = "d-admin"
	RolePower  Role = "power"
)

// Level returns the rank used for authorization checks.
func (r Role) Level() int {
	switch r {
	case RolePower:
		return 2
	case RoleAdmin, RoleDAdmin:
		return 1
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleDAdmin, RolePower:
		return true
	}
	return false
}

// AtLeast reports whether r ranks at or above required.
func (r Role) AtLeast(required Role) bool {
	return r.Level() >= required.Level()
}
