package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/personnel-backend/internal/http/response"
	"github.com/yungbote/personnel-backend/internal/observability"
	"github.com/yungbote/personnel-backend/internal/platform/ctxutil"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
	"github.com/yungbote/personnel-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
	metrics     *observability.Metrics
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, metrics *observability.Metrics) *AuthMiddleware {
	middlewareLogger := log.With("middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService, metrics: metrics}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			am.metrics.IncSecurityEvent("token_missing")
			response.AbortWithStatus(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
		if err != nil {
			am.metrics.IncSecurityEvent("token_rejected")
			am.log.Debug("Token rejected", "error", err)
			response.AbortWithStatus(c, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		rd := ctxutil.GetRequestData(ctx)
		if rd == nil || rd.UserID == uuid.Nil {
			response.AbortWithStatus(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
