package api

import (
	"bitwise74/tourbuddy/internal/service"
	"bitwise74/tourbuddy/pkg/session"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginBody struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (a *API) UserLoginForm(c *gin.Context) {
	newRequest(c).render(c, http.StatusOK, "users/login", gin.H{"title": "Login"})
}

func (a *API) UserLogin(c *gin.Context) {
	r := newRequest(c)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", r.requestID))

		r.fail(c, "Login failed", "/users/login")
		return
	}

	user, err := a.Deps.Accounts.Authenticate(c.Request.Context(), data.Username, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			r.fail(c, "Missing credentials", "/users/login")
		case errors.Is(err, service.ErrAuthFailure):
			r.fail(c, "Password or username is incorrect", "/users/login")
		default:
			c.Error(err)
		}

		return
	}

	if !user.Verified {
		zap.L().Debug("Unverified login attempt", zap.Error(service.ErrUnverified), zap.String("requestID", r.requestID))

		r.fail(c, "Please verify your email before logging in.", "/users/login")
		return
	}

	session.SetUserID(r.session, user.ID)
	returnTo := session.PopReturnTo(r.session, "/places")

	r.succeed(c, "Welcome back to TourBuddy!", returnTo)
}
