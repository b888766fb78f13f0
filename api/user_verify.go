package api

import (
	"bitwise74/tourbuddy/internal/service"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) UserVerify(c *gin.Context) {
	r := newRequest(c)

	err := a.Deps.Accounts.Verify(c.Request.Context(), c.Query("token"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			r.fail(c, "Invalid verification token or token has expired.", "/users/login")
			return
		}

		zap.L().Error("Failed to verify user", zap.Error(err), zap.String("requestID", r.requestID))

		r.fail(c, "Something went wrong during the verification process.", "/users/login")
		return
	}

	r.succeed(c, "Your email has been verified. You can now log in.", "/users/login")
}
