package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hiring-signals/internal/services/health"
	"hiring-signals/internal/shared/metrics"
	"hiring-signals/internal/shared/server/middleware"
	"hiring-signals/internal/shared/server/respond"
)

// RouteRegistrar attaches a feature's routes.
type RouteRegistrar interface {
	RegisterRoutes(r gin.IRoutes)
}

// RouterDeps lists what NewRouter needs to build an engine.
type RouterDeps struct {
	Service          string
	CORSAllowOrigins []string
	Health           *health.Service
	Handlers         []RouteRegistrar
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	metrics.Init()
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(deps.Service),
		middleware.Recovery(),
		middleware.CORS(deps.CORSAllowOrigins),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(deps.Service, nil)
	}
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, healthSvc.Status(c.Request.Context()))
	})
	r.GET("/metrics", metrics.Handler())

	for _, h := range deps.Handlers {
		if h != nil {
			h.RegisterRoutes(r)
		}
	}
	return r
}

// Addr normalizes the listen address, using fallback when port is empty.
func Addr(port, fallback string) string {
	if port == "" {
		port = fallback
	}
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
