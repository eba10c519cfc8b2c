package models

import "strings"

type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
)

// User is the account attached to an auth session.
type User struct {
	ID     ID     `json:"id"`
	UserID ID     `json:"userId,omitempty"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// Key returns the account identifier, whichever field the backend filled.
func (u User) Key() ID {
	if u.ID != "" {
		return u.ID
	}
	return u.UserID
}

// IsCompany reports whether the account may post jobs.
func (u User) IsCompany() bool {
	return strings.EqualFold(strings.TrimSpace(string(u.Role)), string(RoleCompany))
}

// AuthResult is returned by login and signup.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is the login/signup request body.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}
