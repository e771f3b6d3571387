package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"team-portal/config"
	"team-portal/models"
	"team-portal/repository"
)

// StaleAfter is how long a member may go without a heartbeat before the
// sweep reports them offline.
const StaleAfter = 10 * time.Minute

// PresenceService owns every write to isOnline/lastSeen.
type PresenceService struct {
	users repository.UserRepository
	now   func() time.Time
}

func NewPresenceService(users repository.UserRepository) *PresenceService {
	return &PresenceService{users: users, now: time.Now}
}

// MarkOnline sets isOnline and lastSeen and returns the timestamp written.
func (s *PresenceService) MarkOnline(ctx context.Context, userID string) (time.Time, error) {
	now := s.now()
	if err := s.users.SetPresence(ctx, userID, true, now); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// Heartbeat applies a client signal: "offline" logs the user out of the
// presence list, anything else counts as a ping.
func (s *PresenceService) Heartbeat(ctx context.Context, userID string, req models.PresenceRequest) error {
	online := req.NormalizedAction() == models.PresencePing
	err := s.users.SetPresence(ctx, userID, online, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: user not found", ErrUnauthenticated)
	}
	if err != nil {
		config.Log.WithError(err).WithField("user_id", userID).Error("Failed to record heartbeat")
		return err
	}
	return nil
}

// Sweep demotes members whose last heartbeat is older than StaleAfter.
// Admins are never demoted here. A failure is logged and swallowed so the
// listing that triggered the sweep can still be served.
func (s *PresenceService) Sweep(ctx context.Context) int64 {
	cutoff := s.now().Add(-StaleAfter)
	n, err := s.users.MarkStaleOffline(ctx, models.RoleMember, cutoff)
	if err != nil {
		config.Log.WithError(err).Warn("Presence sweep failed")
		return 0
	}
	if n > 0 {
		config.Log.WithField("demoted", n).Debug("Presence sweep demoted stale members")
	}
	return n
}
