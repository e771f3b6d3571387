package testutil

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"team-portal/models"
)

// HashPassword hashes with the minimum bcrypt cost to keep tests fast.
func HashPassword(t testing.TB, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

// SeedUser stores a user with the given credentials and returns it.
func SeedUser(t testing.TB, store *UserStore, username, password, role string) models.User {
	t.Helper()
	return store.Put(models.User{
		Username:     username,
		FullName:     username,
		PasswordHash: HashPassword(t, password),
		Role:         role,
	})
}
