package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"team-portal/config"
	"team-portal/middleware"
	"team-portal/models"
	"team-portal/response"
	"team-portal/services"
)

// Ping is the client heartbeat. An empty or unreadable body is a plain ping.
func (h *Handler) Ping(c *gin.Context) {
	var req models.PresenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		config.Log.WithError(err).Debug("Ping without a usable body, treating as ping")
		req = models.PresenceRequest{}
	}
	h.recordPresence(c, req)
}

func (h *Handler) recordPresence(c *gin.Context, req models.PresenceRequest) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.AbortWithError(c, services.ErrUnauthenticated)
		return
	}
	if err := h.presence.Heartbeat(c.Request.Context(), identity.UserID, req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Status updated")
}
