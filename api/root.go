package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from TourBuddy!")
}

// Heartbeat lets load balancers check that the server is alive
func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
