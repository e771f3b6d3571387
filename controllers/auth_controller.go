package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"team-portal/middleware"
	"team-portal/models"
	"team-portal/response"
	"team-portal/services"
)

// Login handles user authentication and returns JWT token
func (h *Handler) Login(c *gin.Context) {
	var credentials models.Credentials
	if err := c.ShouldBindJSON(&credentials); err != nil {
		response.AbortWithError(c, fmt.Errorf("%w: username and password are required", services.ErrValidation))
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), credentials.Username, credentials.Password)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the currently logged-in user.
func (h *Handler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.AbortWithError(c, services.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, identity.User)
}

// Logout marks the caller offline. Tokens stay valid until they expire.
func (h *Handler) Logout(c *gin.Context) {
	h.recordPresence(c, models.PresenceRequest{Action: models.PresenceOffline})
}
