package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"team-portal/config"
	"team-portal/models"
	"team-portal/repository"
)

// AuthService handles login and per-request token resolution.
type AuthService struct {
	users    repository.UserRepository
	tokens   *TokenService
	presence *PresenceService
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, presence *PresenceService) *AuthService {
	return &AuthService{users: users, tokens: tokens, presence: presence}
}

// Login checks the password, marks the user online and issues a token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrValidation)
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthenticated)
	}

	if _, err := s.presence.MarkOnline(ctx, user.ID); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	config.Log.WithField("user_id", user.ID).Info("User logged in")
	return &models.LoginResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		Token:    token,
	}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// Authenticate resolves the caller behind an Authorization header value and
// refreshes their presence. Every rejection wraps ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, authHeader string) (*models.Identity, error) {
	if authHeader == "" {
		return nil, fmt.Errorf("%w: authorization header missing", ErrUnauthenticated)
	}
	token, ok := BearerToken(authHeader)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token format", ErrUnauthenticated)
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: user not found", ErrUnauthenticated)
	}
	if err != nil {
		return nil, err
	}

	// Presence is approximate; a failed touch should not reject a valid caller.
	if seen, err := s.presence.MarkOnline(ctx, user.ID); err != nil {
		config.Log.WithError(err).WithField("user_id", user.ID).Warn("Failed to refresh presence")
	} else {
		user.IsOnline = true
		user.LastSeen = &seen
	}

	return &models.Identity{User: user, UserID: claims.UserID, Role: claims.Role}, nil
}
