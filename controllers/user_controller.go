package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"team-portal/models"
	"team-portal/response"
	"team-portal/services"
)

// ListUsers is the admin view of member accounts.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListMembers(c.Request.Context())
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListMembers shows every account with its presence to any signed-in user.
func (h *Handler) ListMembers(c *gin.Context) {
	members, err := h.users.Directory(c.Request.Context())
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

// CreateUser handles adding a new user with a specific role
func (h *Handler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, fmt.Errorf("%w: invalid input", services.ErrValidation))
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// ResetPassword replaces a user's password.
func (h *Handler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, fmt.Errorf("%w: new password is required", services.ErrValidation))
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), c.Param("id"), req.Password); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password reset")
}

// DeleteUser removes a member account.
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "User deleted")
}
