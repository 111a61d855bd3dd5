package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/recipeshare/catalog/backend/config"
	"github.com/recipeshare/catalog/backend/internal/api"
	"github.com/recipeshare/catalog/backend/internal/middleware"
	"github.com/recipeshare/catalog/backend/internal/service"
)

// Dependencies are the collaborators the router wires into handlers.
// Redis is only needed when write rate limiting is enabled; Registry only
// when metrics are exposed.
type Dependencies struct {
	Config        *config.Config
	RecipeService service.IRecipeService
	Redis         redis.UniversalClient
	Registry      *prometheus.Registry
	Logger        *zap.Logger
}

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Environment.UsesStructuredLogs() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.Config.CORSAllowedOrigins),
		middleware.Timeout(deps.Config.RequestTimeout),
	)

	var writeLimit gin.HandlerFunc
	if deps.Config.RateLimitEnabled && deps.Redis != nil {
		limiter := middleware.NewWriteRateLimiter(deps.Redis, deps.Config.RateLimitRequests, deps.Config.RateLimitWindow, deps.Logger)
		writeLimit = limiter.Middleware()
	}

	api.RegisterRoutes(router.Group("/api"), deps.RecipeService, writeLimit, deps.Logger)

	if deps.Config.MetricsEnabled && deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})))
	}

	return router
}
