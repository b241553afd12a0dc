package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/http"
	httpH "github.com/yungbote/personnel-backend/internal/http/handlers"
	httpMW "github.com/yungbote/personnel-backend/internal/http/middleware"
	"github.com/yungbote/personnel-backend/internal/observability"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Role   *httpH.RoleHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Auth:   httpH.NewAuthHandler(services.Auth, metrics),
		User:   httpH.NewUserHandler(services.User),
		Role:   httpH.NewRoleHandler(services.Role),
	}
}

func wireMiddleware(log *logger.Logger, services Services, metrics *observability.Metrics) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth, metrics),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	serviceName := ""
	if cfg.Otel.Enabled {
		serviceName = cfg.Otel.ServiceName
	}
	return http.NewServer(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    serviceName,
		AllowedOrigins: cfg.AllowedOrigins,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		RoleHandler:    handlers.Role,
	})
}
