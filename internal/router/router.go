package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/practice-dashboard/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	RequestTimeout   time.Duration
	MaxBodySize      int64
	HSTSMaxAge       int
}

type Router struct {
	engine    *gin.Engine
	auth      *middleware.AuthMiddleware
	public    []Handler
	protected []Handler
}

// NewRouter builds the engine with the shared middleware chain. Metrics is
// optional request instrumentation.
func NewRouter(logger zerolog.Logger, auth *middleware.AuthMiddleware, metrics gin.HandlerFunc, config RouterConfig) *Router {
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
		middleware.SecurityHeaders(middleware.SecurityConfig{HSTSMaxAge: config.HSTSMaxAge}),
		middleware.CORS(config.CORSConfig),
		middleware.BodyLimit(config.MaxBodySize),
	)
	if metrics != nil {
		engine.Use(metrics)
	}
	if config.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}
	if config.RequestTimeout == 0 {
		config.RequestTimeout = middleware.DefaultTimeoutConfig().Duration
	}
	engine.Use(
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
		middleware.ErrorHandler(logger),
	)

	return &Router{engine: engine, auth: auth}
}

// Public registers handlers served without authentication.
func (r *Router) Public(handlers ...Handler) *Router {
	r.public = append(r.public, handlers...)
	return r
}

// Protected registers handlers behind bearer authentication.
func (r *Router) Protected(handlers ...Handler) *Router {
	r.protected = append(r.protected, handlers...)
	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	for _, h := range r.public {
		h.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(
		r.auth.Authenticate(),
		middleware.Cache(middleware.DefaultCacheConfig()),
	)
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
