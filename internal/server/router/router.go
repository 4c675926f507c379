package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cristovive/gestao/internal/config"
	"github.com/cristovive/gestao/internal/server/handlers"
	"github.com/cristovive/gestao/internal/server/middleware"
	"github.com/cristovive/gestao/internal/service/auth"
)

// Handlers bundles every HTTP adapter the router wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Members   *handlers.MemberHandler
	Finance   *handlers.FinanceHandler
	Dashboard *handlers.DashboardHandler
}

// New wires the Gin engine with required routes and middlewares. Everything
// under /api except the login and refresh endpoints requires a valid token.
func New(h Handlers, authSvc *auth.Service, corsCfg config.CORSConfig, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(cors.New(corsConfig(corsCfg)))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(authSvc, logger))

	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/dashboard", h.Dashboard.Overview)

	protected.GET("/members", h.Members.List)
	protected.POST("/members", h.Members.Create)
	protected.PUT("/members/:id", h.Members.Update)
	protected.DELETE("/members/:id", h.Members.Delete)

	protected.GET("/finances", h.Finance.List)
	protected.POST("/finances", h.Finance.Create)
	protected.PUT("/finances/:id", h.Finance.Update)
	protected.DELETE("/finances/:id", h.Finance.Delete)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func corsConfig(cfg config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.AllowedOrigins
	}
	return c
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
