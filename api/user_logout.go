package api

import (
	"bitwise74/tourbuddy/pkg/session"

	"github.com/gin-gonic/gin"
)

// UserLogout drops the session identity. Anonymous requests are fine
func (a *API) UserLogout(c *gin.Context) {
	r := newRequest(c)

	session.ClearUserID(r.session)
	r.succeed(c, "Logged out successfully", "/places")
}
