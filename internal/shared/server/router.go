package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthrisk-backend/internal/assessments"
	googleauth "healthrisk-backend/internal/auth"
	"healthrisk-backend/internal/predictions"
	"healthrisk-backend/internal/services/health"
	"healthrisk-backend/internal/shared/config"
	"healthrisk-backend/internal/shared/metrics"
	"healthrisk-backend/internal/shared/server/middleware"
	"healthrisk-backend/internal/shared/server/respond"
	"healthrisk-backend/internal/users"
)

const (
	rateGroupDefault = "DEFAULT"
	rateGroupLogin   = "LOGIN"
	rateGroupPredict = "PREDICT"
)

// RouterDeps carries the handlers mounted on the API group. Nil handlers are
// skipped.
type RouterDeps struct {
	Config             config.Config
	Health             *health.Service
	AssessmentsHandler *assessments.Handler
	UsersHandler       *users.Handler
	PredictionsHandler *predictions.Handler
	GoogleAuth         *googleauth.GoogleService
	RateLimiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", healthHandler(deps.Health))

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.AssessmentsHandler != nil {
		deps.AssessmentsHandler.RegisterRoutes(api)
	}
	if deps.PredictionsHandler != nil {
		deps.PredictionsHandler.RegisterRoutes(api)
	}

	return r
}

func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			respond.JSON(c, http.StatusOK, health.Report{Status: health.StatusHealthy, Database: health.DatabaseMemory})
			return
		}
		report := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.Healthy() {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	}
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			rateGroupDefault: {Rate: rps, Burst: burst},
			rateGroupLogin:   {Rate: rps / 5, Burst: 5},
			rateGroupPredict: {Rate: rps / 5, Burst: 5},
		},
		DefaultGroup: rateGroupDefault,
		GroupFor:     rateGroupFor,
		Limiter:      deps.RateLimiter,
	}
}

func rateGroupFor(c *gin.Context) string {
	switch c.Request.URL.Path {
	case "/api/v1/login", "/api/v1/signup":
		return rateGroupLogin
	case "/api/v1/predict":
		return rateGroupPredict
	case "/metrics", "/api/v1/health":
		return "NONE"
	default:
		return rateGroupDefault
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
