package domain

import (
	"errors"
	"time"
)

// Role is the authorization level attached to a user and to session claims.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrUnverified = errors.New("email not verified")
var ErrDeactivated = errors.New("account deactivated")
var ErrNotAdmin = errors.New("admin access required")
var ErrSelfAction = errors.New("cannot perform this action on your own account")

// User models a registered account. Email is the unique login key and is
// always stored lowercased.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	IsActive      bool      `json:"is_active"`
	ProfileImage  string    `json:"profile_image,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
