package domain

import "errors"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleGuest  = "guest"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidSession = errors.New("invalid session")
var ErrForbidden = errors.New("access forbidden")

// User models an account in the library system.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	FullName     string `json:"full_name"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMember, RoleGuest:
		return true
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
