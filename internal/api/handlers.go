package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/wb-service/portal/backend/internal/middleware"
	"github.com/wb-service/portal/backend/internal/service"
)

// Deps carries everything the router needs
type Deps struct {
	Profiles  service.IProfileService
	Birthdays service.IBirthdayService
	Static    service.IStaticService
	Auth      middleware.TokenValidator
	// Health pings the backing store; nil reports healthy
	Health func(ctx context.Context) error
	// UploadLimiter is optional
	UploadLimiter  *middleware.RateLimiter
	Logger         zerolog.Logger
	AllowedOrigins []string
	DefaultLang    string
	MaxUploadBytes int64
}

// responder renders errors in the configured default language
type responder struct {
	defaultLang string
}

// NewRouter builds the gin engine with every route registered
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(deps.AllowedOrigins))
	if deps.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = deps.MaxUploadBytes
	}

	RegisterRoutes(router, deps)
	return router
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck(deps.Health))

	res := responder{defaultLang: deps.DefaultLang}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.Auth))

	NewProfileHandler(deps.Profiles, res).RegisterRoutes(v1)
	NewBirthdayHandler(deps.Birthdays, res).RegisterRoutes(v1)
	NewStaticHandler(deps.Static, deps.UploadLimiter, res).RegisterRoutes(v1)
}

// HealthCheck returns the health status of the API
func HealthCheck(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":   "unhealthy",
					"database": err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"database": "ok",
		})
	}
}

// caller returns the authenticated employee id or aborts with 401
func (r responder) caller(c *gin.Context) (int64, bool) {
	eid, ok := middleware.CallerEID(c)
	if !ok {
		r.respondError(c, service.Unauthorized("user not authenticated"))
	}
	return eid, ok
}

// int64Query parses an optional integer query parameter
func int64Query(c *gin.Context, name string, fallback int64) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, service.WrongParameters(name)
	}
	return v, nil
}
