// Package api contains all endpoints available
package api

import (
	"bitwise74/tourbuddy/config"
	"bitwise74/tourbuddy/internal"
	"bitwise74/tourbuddy/internal/service"
	"bitwise74/tourbuddy/pkg/middleware"
	"bitwise74/tourbuddy/views"
	"fmt"
	"net/http"
	"time"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginsessions "github.com/gin-contrib/sessions"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router      *gin.Engine
	Config      *config.Config
	Deps        *internal.Deps
	RateLimiter *middleware.RateLimiter

	cache persist.CacheStore
}

// NewRouter sets up logging, opens every dependency and builds the router
func NewRouter(cfg *config.Config) (*API, error) {
	if err := makeLogger(cfg.App.LogLevel); err != nil {
		return nil, err
	}

	deps, err := internal.NewDeps(cfg)
	if err != nil {
		return nil, err
	}

	a, err := New(cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}

	return a, nil
}

// New builds the router on top of already opened dependencies
func New(cfg *config.Config, deps *internal.Deps) (*API, error) {
	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates, %w", err)
	}

	a := &API{
		Config: cfg,
		Deps:   deps,
		RateLimiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: cfg.Security.RateLimit,
			Burst:             cfg.Security.RateLimit * 2,
		}),
		cache: persist.NewMemoryStore(time.Minute),
	}

	router := gin.New()
	a.Router = router
	router.SetHTMLTemplate(tmpl)

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     cfg.Host.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.CustomRecovery(a.recoverPanic),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
		ginsessions.Sessions(cfg.Session.Name, deps.Sessions),
		a.errorHandler(),
		middleware.LoadUser(deps.Accounts, service.ErrUserNotFound),
	)

	router.RedirectFixedPath = true

	router.NoRoute(func(c *gin.Context) {
		c.Error(ErrNotFound)
	})

	// GET /			-> Greeting
	router.GET("/", a.cacheFor(60), a.Root)

	// HEAD /heartbeat		-> Used to check if the server is alive
	router.HEAD("/heartbeat", a.Heartbeat)

	users := router.Group("/users", a.RateLimiter.Middleware(), middleware.BodySizeLimiter(1<<20))
	{
		// GET /users/register		-> Registration form
		users.GET("/register", a.UserRegisterForm)

		// POST /users/register		-> Registers a new user and mails a verification link
		users.POST("/register", a.UserRegister)

		// GET /users/verify-email	-> Verifies the email address owning ?token=
		users.GET("/verify-email", a.UserVerify)

		// GET /users/login		-> Login form
		users.GET("/login", a.UserLoginForm)

		// POST /users/login		-> Starts a session for a verified user
		users.POST("/login", a.UserLogin)

		// GET|POST /users/logout	-> Ends the session
		users.GET("/logout", a.UserLogout)
		users.POST("/logout", a.UserLogout)
	}

	places := router.Group("/places", middleware.BodySizeLimiter(1<<20))
	{
		// GET /places			-> Lists every place
		places.GET("", a.PlacesIndex)

		// GET /places/new		-> New place form
		places.GET("/new", middleware.RequireLogin(), a.PlacesNew)

		// POST /places			-> Creates a place
		places.POST("", middleware.RequireLogin(), a.PlacesCreate)
	}

	return a, nil
}

// Handler returns the root http.Handler
func (a *API) Handler() http.Handler {
	return a.Router
}

func makeLogger(level string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("failed to parse log level, %w", err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger, %w", err)
	}

	zap.ReplaceGlobals(log)
	return nil
}

// cacheFor caches responses by URI. Per-request headers are never replayed
func (a *API) cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(a.cache, time.Second*time.Duration(sec),
		cache.WithDiscardHeaders(append(cache.CorsHeaders(), middleware.RequestIDHeader)),
	)
}
