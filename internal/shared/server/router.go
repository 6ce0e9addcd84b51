package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"healthdocs-backend/internal/documents"
	"healthdocs-backend/internal/shared/config"
	"healthdocs-backend/internal/shared/metrics"
	"healthdocs-backend/internal/shared/server/middleware"
	"healthdocs-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts; construction happens in
// bootstrap.
type RouterDeps struct {
	Config    config.Config
	Documents *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rule: middleware.RateLimitRule{Rate: 1, Burst: 10},
			Match: func(c *gin.Context) bool {
				return c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/documents/files"
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	deps.Documents.RegisterRoutes(api)

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
