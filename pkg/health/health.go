package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type status struct {
	Status string `json:"status"`
}

// Health endpoint
func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Health check
	//
	// Liveness probe.
	//
	// responses:
	//   200:
	c.JSON(http.StatusOK, status{Status: "up"})
}
