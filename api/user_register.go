package api

import (
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/internal/service"
	"bitwise74/tourbuddy/pkg/security"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (a *API) UserRegisterForm(c *gin.Context) {
	newRequest(c).render(c, http.StatusOK, "users/register", gin.H{"title": "Register"})
}

func (a *API) UserRegister(c *gin.Context) {
	r := newRequest(c)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", r.requestID))

		r.fail(c, "Invalid form submission", "/users/register")
		return
	}

	token, err := security.MakeVerificationToken()
	if err != nil {
		c.Error(err)
		return
	}

	user := &model.User{
		Username:          data.Username,
		Email:             data.Email,
		VerificationToken: &token,
	}

	if err := a.Deps.Accounts.Register(c.Request.Context(), user, data.Password); err != nil {
		var vErr *service.ValidationError

		switch {
		case errors.As(err, &vErr), errors.Is(err, service.ErrDuplicateIdentity):
			zap.L().Debug("Registration rejected", zap.Error(err), zap.String("requestID", r.requestID))
			r.fail(c, sentence(err.Error()), "/users/register")
		default:
			zap.L().Error("Failed to register user", zap.Error(err), zap.NamedError("cause", errors.Unwrap(err)), zap.String("requestID", r.requestID))
			r.fail(c, sentence(err.Error()), "/users/register")
		}

		return
	}

	mail := service.VerificationMail(user.Email, a.Config.Host.Scheme(), c.Request.Host, token)

	// The user stays registered and unverified when this fails
	if err := a.Deps.Mailer.Send(c.Request.Context(), mail); err != nil {
		zap.L().Error("Failed to send verification email", zap.Error(err), zap.NamedError("cause", errors.Unwrap(err)), zap.String("requestID", r.requestID))

		r.fail(c, sentence(err.Error()), "/users/register")
		return
	}

	r.succeed(c, "A verification email has been sent to your email address. Please verify your email before logging in.", "/users/login")
}
