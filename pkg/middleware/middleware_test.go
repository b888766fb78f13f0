package middleware

import (
	"bitwise74/tourbuddy/internal/model"
	"bitwise74/tourbuddy/pkg/session"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ginsessions "github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

type fakeUsers map[string]*model.User

func (f fakeUsers) Get(_ context.Context, id string) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}

	return nil, errMissing
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())

	var seen string
	r.GET("/", func(c *gin.Context) {
		seen = c.GetString("requestID")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, seen, requestIDLength)
	assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2})

	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for range 3 {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterEvict(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, TTL: time.Millisecond})
	rl.getVisitor("10.0.0.1")

	time.Sleep(5 * time.Millisecond)
	rl.evict()

	assert.Empty(t, rl.visitors)
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/", BodySizeLimiter(8), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("way more than eight bytes")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("tiny")))
	assert.Equal(t, http.StatusOK, w.Code)
}

func newAuthRouter(users fakeUsers) *gin.Engine {
	r := gin.New()
	r.Use(ginsessions.Sessions("tourbuddy.sid", memstore.NewStore([]byte("secret"))))

	r.GET("/login-as/:id", func(c *gin.Context) {
		s := ginsessions.Default(c)
		session.SetUserID(s, c.Param("id"))
		s.Save()
		c.Status(http.StatusNoContent)
	})

	r.Use(LoadUser(users, errMissing))

	r.GET("/secret", RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUser(c).Username)
	})

	r.GET("/return-to", func(c *gin.Context) {
		c.String(http.StatusOK, session.PopReturnTo(ginsessions.Default(c), "/places"))
	})

	return r
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	r := newAuthRouter(fakeUsers{})

	w := get(r, "/secret?x=1", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/login", w.Header().Get("Location"))

	w = get(r, "/return-to", w.Result().Cookies())
	assert.Equal(t, "/secret?x=1", w.Body.String())
}

func TestRequireLoginAllowsSignedIn(t *testing.T) {
	r := newAuthRouter(fakeUsers{"u1": {ID: "u1", Username: "alice"}})

	w := get(r, "/login-as/u1", nil)
	cookies := w.Result().Cookies()

	w = get(r, "/secret", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", w.Body.String())
}

func TestLoadUserIgnoresMissingUser(t *testing.T) {
	r := newAuthRouter(fakeUsers{})

	w := get(r, "/login-as/ghost", nil)
	w = get(r, "/secret", w.Result().Cookies())

	assert.Equal(t, http.StatusFound, w.Code)
}
