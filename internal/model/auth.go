package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// User is the authenticated dashboard user taken from the bearer token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// TokenClaims represents JWT claims issued by the clinical backend.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role"`
	Rol    string `json:"rol,omitempty"`
}

func (c *TokenClaims) User() *User {
	id := c.UserID
	if id == "" {
		id = c.Subject
	}
	role := c.Role
	if role == "" {
		role = c.Rol
	}
	return &User{ID: id, Name: c.Name, Email: c.Email, Role: role}
}
