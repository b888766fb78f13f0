package api

import (
	"errors"
	"fmt"
	"net/http"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HTTPError is an error that knows which status page to render
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

var ErrNotFound = &HTTPError{Status: http.StatusNotFound, Message: "Page Not Found"}

const defaultErrorMessage = "Something went wrong"

// errorHandler renders the error page for the last error attached to the
// request, unless a response was already written
func (a *API) errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status, message := http.StatusInternalServerError, defaultErrorMessage

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			status, message = httpErr.Status, httpErr.Message
		} else {
			zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", c.GetString("requestID")))
		}

		if c.Writer.Written() {
			return
		}

		a.renderError(c, status, message)
	}
}

func (a *API) recoverPanic(c *gin.Context, rec any) {
	zap.L().Error("Recovered from panic", zap.Any("panic", rec), zap.String("requestID", c.GetString("requestID")))

	a.renderError(c, http.StatusInternalServerError, defaultErrorMessage)
	c.Abort()
}

func (a *API) renderError(c *gin.Context, status int, message string) {
	// Panics before the sessions middleware leave no session to render with
	if _, ok := c.Get(ginsessions.DefaultKey); !ok {
		c.String(status, message)
		return
	}

	newRequest(c).render(c, status, "error", gin.H{
		"title":   "Error",
		"status":  status,
		"message": message,
	})
}
