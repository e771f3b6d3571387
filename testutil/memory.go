// Package testutil provides in-memory repositories for service and handler tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"team-portal/models"
	"team-portal/repository"
)

// UserStore is a concurrency-safe in-memory repository.UserRepository.
type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User

	// Err, when set, is returned by every call.
	Err error
	// SweepErr, when set, is returned by MarkStaleOffline only.
	SweepErr error
}

var _ repository.UserRepository = (*UserStore)(nil)

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]models.User)}
}

// Put inserts or replaces a user directly, assigning an id when empty.
func (s *UserStore) Put(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = u
	return u
}

// Get returns a copy of the stored user.
func (s *UserStore) Get(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *UserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = uuid.NewString()
	s.users[user.ID] = *user
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) ExistsWithRole(_ context.Context, role string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	for _, u := range s.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStore) List(_ context.Context, role string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (s *UserStore) SetPresence(_ context.Context, id string, online bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsOnline = online
	u.LastSeen = &at
	s.users[id] = u
	return nil
}

func (s *UserStore) MarkStaleOffline(_ context.Context, role string, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	if s.SweepErr != nil {
		return 0, s.SweepErr
	}
	var n int64
	for id, u := range s.users {
		if u.Role == role && u.IsOnline && u.LastSeen != nil && u.LastSeen.Before(cutoff) {
			u.IsOnline = false
			s.users[id] = u
			n++
		}
	}
	return n, nil
}

func (s *UserStore) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *UserStore) Stats(_ context.Context) (models.UserStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return models.UserStats{}, s.Err
	}
	stats := models.UserStats{Total: int64(len(s.users))}
	for _, u := range s.users {
		if u.IsOnline {
			stats.Online++
		}
	}
	return stats, nil
}

// ProjectStore is an in-memory repository.ProjectRepository.
type ProjectStore struct {
	mu       sync.Mutex
	projects map[string]models.Project
	seq      int
}

var _ repository.ProjectRepository = (*ProjectStore)(nil)

func NewProjectStore() *ProjectStore {
	return &ProjectStore{projects: make(map[string]models.Project)}
}

func (s *ProjectStore) Create(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	project.ID = fmt.Sprintf("p%d", s.seq)
	s.projects[project.ID] = *project
	return nil
}

func (s *ProjectStore) FindByID(_ context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *ProjectStore) List(_ context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *ProjectStore) Update(_ context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return repository.ErrNotFound
	}
	s.projects[project.ID] = *project
	return nil
}

func (s *ProjectStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *ProjectStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.projects)), nil
}
