package api

import (
	"bitwise74/tourbuddy/pkg/middleware"
	"bitwise74/tourbuddy/pkg/session"
	"net/http"
	"unicode"
	"unicode/utf8"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// request bundles the per-request state every handler needs
type request struct {
	session   ginsessions.Session
	flash     *session.Flash
	requestID string
}

func newRequest(c *gin.Context) *request {
	s := ginsessions.Default(c)

	return &request{
		session:   s,
		flash:     session.NewFlash(s),
		requestID: c.GetString("requestID"),
	}
}

// render pops pending flashes into data and renders the page
func (r *request) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	data["flash"] = r.flash.Pop()
	data["user"] = middleware.CurrentUser(c)

	if err := r.session.Save(); err != nil {
		zap.L().Error("Failed to save session", zap.Error(err), zap.String("requestID", r.requestID))
	}

	c.HTML(status, name, data)
}

// redirect saves the session and redirects. A failed save is handed to the
// error handler
func (r *request) redirect(c *gin.Context, to string) {
	if err := r.session.Save(); err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.Redirect(http.StatusFound, to)
}

func (r *request) fail(c *gin.Context, msg, to string) {
	r.flash.Error(msg)
	r.redirect(c, to)
}

func (r *request) succeed(c *gin.Context, msg, to string) {
	r.flash.Success(msg)
	r.redirect(c, to)
}

// sentence capitalizes the first letter of an error message for display
func sentence(msg string) string {
	first, size := utf8.DecodeRuneInString(msg)
	if first == utf8.RuneError {
		return msg
	}

	return string(unicode.ToUpper(first)) + msg[size:]
}
