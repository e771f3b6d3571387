package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the structure of the JWT claims
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Validate is called by the jwt parser after the registered claims pass.
func (c Claims) Validate() error {
	if c.UserID == "" {
		return errors.New("token has no subject user")
	}
	if !ValidRole(c.Role) {
		return errors.New("token carries an unknown role")
	}
	return nil
}

// Identity is what the authentication middleware resolves for a request.
type Identity struct {
	User   *User
	UserID string
	Role   string
}

// IsAdmin reports whether the resolved caller is an admin.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
