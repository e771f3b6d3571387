package repository

import (
	"context"
	"errors"
	"time"

	"team-portal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository is the credential store. Presence writes are single
// conditional updates; the backing store provides their atomicity.
type UserRepository interface {
	// Create assigns user.ID. It returns ErrDuplicate when the username is taken.
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsWithRole(ctx context.Context, role string) (bool, error)
	// List returns users with the given role, or every user when role is empty.
	List(ctx context.Context, role string) ([]models.User, error)
	SetPresence(ctx context.Context, id string, online bool, at time.Time) error
	// MarkStaleOffline flips online users of role whose lastSeen is before
	// cutoff to offline, leaving lastSeen as is.
	MarkStaleOffline(ctx context.Context, role string, cutoff time.Time) (int64, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.UserStats, error)
}

// ProjectRepository stores gallery entries.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id string) (*models.Project, error)
	// List returns projects newest first.
	List(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
