package routes

import (
	"github.com/gin-gonic/gin"

	"team-portal/controllers"
	"team-portal/middleware"
	"team-portal/services"
)

// SetupRoutes mengatur semua rute utama aplikasi
func SetupRoutes(r *gin.Engine, h *controllers.Handler, auth *services.AuthService) {
	r.POST("/login", h.Login)

	authed := r.Group("/", middleware.JWTAuthMiddleware(auth))
	{
		authed.GET("/me", h.Me)
		authed.POST("/logout", h.Logout)
		authed.POST("/presence/ping", h.Ping)
		authed.GET("/members", h.ListMembers)

		authed.GET("/projects", h.ListProjects)
		authed.POST("/projects", h.CreateProject)
	}

	admin := authed.Group("/", middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.PATCH("/users/:id", h.ResetPassword)
		admin.DELETE("/users/:id", h.DeleteUser)

		admin.PUT("/projects/:id", h.UpdateProject)
		admin.DELETE("/projects/:id", h.DeleteProject)
		admin.POST("/projects/:id/thumbnail", h.UploadThumbnail)

		admin.GET("/admin/metrics", h.GetAdminMetrics)
	}
}
