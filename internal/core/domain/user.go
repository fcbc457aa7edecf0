package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold. It is fixed at registration.
type Role string

const (
	RoleHR       Role = "HR"
	RoleEmployee Role = "EMPLOYEE"
)

var ErrInvalidRole = errors.New("invalid role")

// ParseRole converts raw input into a Role. Matching is exact: "hr" is not HR.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleHR:
		return RoleHR, nil
	case RoleEmployee:
		return RoleEmployee, nil
	default:
		return "", ErrInvalidRole
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }

// User models a registered identity. Email is the login key and is unique.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is the public projection of a User. It never carries the hash.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// Identity is what a verified bearer token proves about the caller.
type Identity struct {
	UserID int64
	Role   Role
}
