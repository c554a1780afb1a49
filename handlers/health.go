package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports that the server is up.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
}
