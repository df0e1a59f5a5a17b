package domain

import (
	"errors"
	"time"
)

const (
	RoleHR     = "hr"
	RoleClient = "client"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("hr access required")

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleHR || role == RoleClient
}

// User models an account in the system. Only HR accounts carry a credential;
// client accounts exist purely as feedback subjects.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsHR reports whether the user may issue feedback requests.
func (u *User) IsHR() bool {
	return u.Role == RoleHR
}
