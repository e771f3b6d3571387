package services

import (
	"context"

	"team-portal/config"
	"team-portal/models"
	"team-portal/repository"
)

// AdminMetrics is the dashboard summary for administrators.
type AdminMetrics struct {
	models.UserStats
	TotalProjects int64 `json:"total_projects"`
}

// AdminService aggregates counts across users and projects.
type AdminService struct {
	users    repository.UserRepository
	projects repository.ProjectRepository
	presence *PresenceService
}

func NewAdminService(users repository.UserRepository, projects repository.ProjectRepository, presence *PresenceService) *AdminService {
	return &AdminService{users: users, projects: projects, presence: presence}
}

// Metrics runs the presence sweep first so the online count is not stale.
func (s *AdminService) Metrics(ctx context.Context) (*AdminMetrics, error) {
	s.presence.Sweep(ctx)

	stats, err := s.users.Stats(ctx)
	if err != nil {
		config.Log.Error("Error retrieving user stats: ", err)
		return nil, err
	}

	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		config.Log.Error("Error counting projects: ", err)
		return nil, err
	}

	return &AdminMetrics{UserStats: stats, TotalProjects: totalProjects}, nil
}
