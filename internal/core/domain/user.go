package domain

import (
	"errors"
	"time"
)

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// User is a registered forum account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated actor for a single request. It is derived
// from a verified token and never outlives the request that carried it.
type Identity struct {
	Username string
	Role     Role
}

// CanModify implements the owner-or-admin rule: an identity may mutate a
// resource iff it is an admin or it authored the resource.
func (i Identity) CanModify(authorUsername string) bool {
	return i.Role == RoleAdmin || i.Username == authorUsername
}
