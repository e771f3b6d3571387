package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether role is one of the roles the portal knows about.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleMember
}

// Credentials structure for login request
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// User structure represents the user entity in the system
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	IsOnline     bool       `json:"isOnline"`
	LastSeen     *time.Time `json:"lastSeen"`
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserRequest is the admin payload for adding an account.
type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ResetPasswordRequest carries the replacement password.
type ResetPasswordRequest struct {
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// MemberSummary is the reduced view every authenticated user may list.
type MemberSummary struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	FullName string     `json:"fullName"`
	Role     string     `json:"role"`
	IsOnline bool       `json:"isOnline"`
	LastSeen *time.Time `json:"lastSeen"`
}

// Summary strips a user down to the fields shown on the members list.
func (u User) Summary() MemberSummary {
	return MemberSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Role:     u.Role,
		IsOnline: u.IsOnline,
		LastSeen: u.LastSeen,
	}
}

// UserStats backs the admin metrics endpoint.
type UserStats struct {
	Total  int64 `json:"total_users"`
	Online int64 `json:"online_users"`
}
