package domain

import "time"

// User represents a registered account. Token is the bearer credential
// checked by the auth middleware; issuing tokens is handled elsewhere.
type User struct {
	ID        string
	Name      string
	Role      Role
	Token     string
	CreatedAt time.Time
}

// Identity returns the identity claim carried by this user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}
