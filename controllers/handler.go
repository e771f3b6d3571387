package controllers

import (
	"team-portal/services"
)

// Handler groups the HTTP endpoints and the services behind them.
type Handler struct {
	auth     *services.AuthService
	presence *services.PresenceService
	users    *services.UserService
	projects *services.ProjectService
	admin    *services.AdminService
}

func NewHandler(
	auth *services.AuthService,
	presence *services.PresenceService,
	users *services.UserService,
	projects *services.ProjectService,
	admin *services.AdminService,
) *Handler {
	return &Handler{
		auth:     auth,
		presence: presence,
		users:    users,
		projects: projects,
		admin:    admin,
	}
}
