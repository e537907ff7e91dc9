package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth reports liveness only; upstream providers are not probed.
func GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
}
