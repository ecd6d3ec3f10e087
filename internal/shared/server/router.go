package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/enhance"
	"resume-builder/internal/images"
	"resume-builder/internal/resumes"
	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/users"
)

// RouterDeps holds handlers for routing.
type RouterDeps struct {
	Config        config.Config
	Verifier      middleware.TokenVerifier
	Health        *health.Service
	ResumeHandler *resumes.Handler
	UserHandler   *users.Handler
	AIHandler     *enhance.Handler
	MediaHandler  *images.MediaHandler
	GoogleAuth    *googleauth.GoogleService
	AILimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())
	if deps.MediaHandler != nil {
		deps.MediaHandler.RegisterRoutes(r)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		status, ok := deps.Health.Status(c.Request.Context())
		if !ok {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.OK(c, status)
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(deps.Verifier))

	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api, protected)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api, protected)
	}
	if deps.AIHandler != nil {
		ai := protected.Group("")
		ai.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: deps.Config.AIRatePerSec, Burst: deps.Config.AIBurst},
				"IMPORT":  {Rate: deps.Config.AIRatePerSec / 5, Burst: max(1, deps.Config.AIBurst/5)},
			},
			GroupFor: enhance.RateLimitGroup,
			Limiter:  deps.AILimiter,
		}))
		deps.AIHandler.RegisterRoutes(ai)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
