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

const maxThumbnailSize = 5 << 20

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) CreateProject(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.AbortWithError(c, services.ErrUnauthenticated)
		return
	}

	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, fmt.Errorf("%w: invalid input", services.ErrValidation))
		return
	}

	project, err := h.projects.Create(c.Request.Context(), identity, req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	var req models.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.AbortWithError(c, fmt.Errorf("%w: invalid input", services.ErrValidation))
		return
	}

	project, err := h.projects.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Project deleted")
}

// UploadThumbnail replaces a project's preview with an uploaded image.
func (h *Handler) UploadThumbnail(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.AbortWithError(c, fmt.Errorf("%w: file is required", services.ErrValidation))
		return
	}
	if header.Size > maxThumbnailSize {
		response.AbortWithError(c, fmt.Errorf("%w: thumbnail exceeds 5MB", services.ErrValidation))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	defer file.Close()

	project, err := h.projects.SetThumbnail(c.Request.Context(), c.Param("id"),
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
