package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"team-portal/config"
	"team-portal/models"
	"team-portal/repository"
)

// UserService covers account management and the two user listings.
type UserService struct {
	users    repository.UserRepository
	presence *PresenceService
	cost     int
}

func NewUserService(users repository.UserRepository, presence *PresenceService) *UserService {
	return &UserService{users: users, presence: presence, cost: bcrypt.DefaultCost}
}

func (s *UserService) hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		config.Log.Error("Error hashing password: ", err)
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

// Create adds an account. Usernames are unique; the role defaults to member.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Username == "" || req.FullName == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username, fullName and password are required", ErrValidation)
	}
	if req.Role == "" {
		req.Role = models.RoleMember
	}
	if !models.ValidRole(req.Role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, req.Role)
	}

	_, err := s.users.FindByUsername(ctx, req.Username)
	if err == nil {
		return nil, fmt.Errorf("%w: username already registered", ErrValidation)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: hashed,
		Role:         req.Role,
	}
	// The unique index still guards against a concurrent create.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: username already registered", ErrValidation)
		}
		config.Log.Error("Error creating user: ", err)
		return nil, err
	}

	config.Log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("User created")
	return user, nil
}

// ResetPassword replaces the stored hash of the given account.
func (s *UserService) ResetPassword(ctx context.Context, id, password string) error {
	if password == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}
	hashed, err := s.hash(password)
	if err != nil {
		return err
	}
	err = s.users.UpdatePassword(ctx, id, hashed)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return err
}

// Delete removes a member account. Admin accounts are refused one at a time;
// nothing stops deleting every admin through separate calls.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		return fmt.Errorf("%w: admin accounts cannot be deleted", ErrConflict)
	}

	err = s.users.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	if err != nil {
		return err
	}
	config.Log.WithField("user_id", id).Info("User deleted")
	return nil
}

// ListMembers is the admin listing: every member account, after the sweep.
func (s *UserService) ListMembers(ctx context.Context) ([]models.User, error) {
	s.presence.Sweep(ctx)
	return s.users.List(ctx, models.RoleMember)
}

// Directory is the listing every signed-in user may see: all accounts,
// reduced to presence-relevant fields, after the sweep.
func (s *UserService) Directory(ctx context.Context) ([]models.MemberSummary, error) {
	s.presence.Sweep(ctx)
	users, err := s.users.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]models.MemberSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}

// EnsureAdmin creates the bootstrap admin when credentials are configured
// and no admin exists yet. It reports whether an account was created.
func (s *UserService) EnsureAdmin(ctx context.Context, username, password, fullName string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}
	exists, err := s.users.ExistsWithRole(ctx, models.RoleAdmin)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	_, err = s.Create(ctx, models.CreateUserRequest{
		Username: username,
		FullName: fullName,
		Password: password,
		Role:     models.RoleAdmin,
	})
	if err != nil {
		return false, err
	}
	config.Log.WithField("username", username).Warn("Bootstrap admin created, change its password")
	return true, nil
}
