package middleware

import (
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/pkg/session"
	"context"
	"errors"
	"net/http"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserLoader fetches the signed in user
type UserLoader interface {
	Get(ctx context.Context, id string) (*model.User, error)
}

// CurrentUser returns the user set by LoadUser, or nil for anonymous requests
func CurrentUser(c *gin.Context) *model.User {
	u, ok := c.Get("user")
	if !ok {
		return nil
	}

	user, _ := u.(*model.User)
	return user
}

// LoadUser resolves the user ID stored in the session and exposes the user
// under the "user" key. Sessions pointing at a missing user are treated as
// anonymous. notFound is matched with errors.Is
func LoadUser(users UserLoader, notFound error) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := ginsessions.Default(c)

		id := session.UserID(s)
		if id == "" {
			c.Next()
			return
		}

		user, err := users.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, notFound) {
				zap.L().Error("Failed to load session user", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
			}

			c.Next()
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// RequireLogin redirects anonymous users to the login page. The page they
// tried to open is remembered for GET requests so login can send them back
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		s := ginsessions.Default(c)

		if c.Request.Method == http.MethodGet {
			session.SetReturnTo(s, c.Request.URL.RequestURI())
		}

		session.NewFlash(s).Error("You must be signed in first!")

		if err := s.Save(); err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Redirect(http.StatusFound, "/users/login")
		c.Abort()
	}
}
