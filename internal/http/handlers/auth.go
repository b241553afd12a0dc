package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/personnel-backend/internal/http/response"
	"github.com/yungbote/personnel-backend/internal/observability"
	"github.com/yungbote/personnel-backend/internal/platform/apierr"
	"github.com/yungbote/personnel-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
	metrics     *observability.Metrics
}

func NewAuthHandler(authService services.AuthService, metrics *observability.Metrics) *AuthHandler {
	return &AuthHandler{authService: authService, metrics: metrics}
}

type loginRequest struct {
	EmpID    int    `json:"empId" binding:"required,gt=0"`
	Password string `json:"password" binding:"required"`
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, err)
		return
	}
	res, err := ah.authService.Login(c.Request.Context(), req.EmpID, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		ah.metrics.IncSecurityEvent("login_failed")
		response.RespondError(c, apierr.Unauthorized("invalid_credentials", err))
		return
	}
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, "Logged In Successfully", gin.H{
		"user":      res.User,
		"token":     res.Token,
		"expiresIn": int(ah.authService.GetAccessTTL().Seconds()),
	})
}
