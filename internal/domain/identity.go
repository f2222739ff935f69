package domain

// Role represents the access level of an authenticated user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the allowed values.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the authenticated caller's claim, asserted by the auth layer
// on every request.
type Identity struct {
	UserID string
	Role   Role
}

// IsAdmin returns true if the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
