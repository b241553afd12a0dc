package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/personnel-backend/internal/http/handlers"
	httpMW "github.com/yungbote/personnel-backend/internal/http/middleware"
	"github.com/yungbote/personnel-backend/internal/observability"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

const healthPath = "/healthcheck"

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	RoleHandler    *httpH.RoleHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	httpH.UseJSONFieldNames()

	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log, healthPath))
	r.Use(httpMW.Metrics(cfg.Metrics, healthPath))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET(healthPath, cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// User
		if cfg.UserHandler != nil {
			protected.POST("/user", cfg.UserHandler.Create)
			protected.GET("/user", cfg.UserHandler.List)
			protected.GET("/user/:id", cfg.UserHandler.Get)
			protected.PATCH("/user/:id", cfg.UserHandler.Update)
			protected.DELETE("/user/:id", cfg.UserHandler.Delete)
		}

		// Roles
		if cfg.RoleHandler != nil {
			protected.POST("/roles", cfg.RoleHandler.Create)
			protected.GET("/roles", cfg.RoleHandler.List)
			protected.GET("/roles/:id", cfg.RoleHandler.Get)
			protected.PATCH("/roles/:id", cfg.RoleHandler.Update)
			protected.DELETE("/roles/:id", cfg.RoleHandler.Delete)
		}
	}

	return r
}
