package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"team-portal/response"
)

func (h *Handler) GetAdminMetrics(c *gin.Context) {
	metrics, err := h.admin.Metrics(c.Request.Context())
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
