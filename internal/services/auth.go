package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/personnel-backend/internal/data/repos"
	domainagg "github.com/yungbote/personnel-backend/internal/domain/aggregates"
	"github.com/yungbote/personnel-backend/internal/domain/personnel"
	"github.com/yungbote/personnel-backend/internal/platform/ctxutil"
	"github.com/yungbote/personnel-backend/internal/platform/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid employee id or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthConfig struct {
	Secret   string
	TTL      time.Duration
	Issuer   string
	Audience string
}

// JWTClaims is the signed token payload.
type JWTClaims struct {
	UserID   string `json:"id"`
	EmpID    int    `json:"empId"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	User  *personnel.User `json:"user"`
	Token string          `json:"token"`
}

type AuthService interface {
	Login(ctx context.Context, empID int, password string) (*LoginResult, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log    *logger.Logger
	users  repos.UserRepo
	hasher domainagg.PasswordHasher
	cfg    AuthConfig
	now    func() time.Time
}

func NewAuthService(log *logger.Logger, users repos.UserRepo, hasher domainagg.PasswordHasher, cfg AuthConfig) AuthService {
	serviceLog := log.With("service", "AuthService")
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &authService{
		log:    serviceLog,
		users:  users,
		hasher: hasher,
		cfg:    cfg,
		now:    time.Now,
	}
}

func (as *authService) Login(ctx context.Context, empID int, password string) (*LoginResult, error) {
	if empID <= 0 || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := as.users.GetByEmpID(ctx, nil, empID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("load user by emp id: %w", err)
	}
	if !as.hasher.Compare(password, user.Password) {
		as.log.Debug("Login rejected", "emp_id", empID)
		return nil, ErrInvalidCredentials
	}
	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (as *authService) generateAccessToken(user *personnel.User) (string, error) {
	now := as.now()
	claims := JWTClaims{
		UserID:   user.ID.String(),
		EmpID:    user.EmpID(),
		FullName: user.FullName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    as.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.cfg.TTL)),
		},
	}
	if as.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{as.cfg.Audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.cfg.Secret))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if strings.TrimSpace(tokenString) == "" {
		return ctx, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(as.now),
	}
	if as.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(as.cfg.Issuer))
	}
	if as.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(as.cfg.Audience))
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(*jwt.Token) (interface{}, error) {
		return []byte(as.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return ctx, fmt.Errorf("%w: bad user id", ErrInvalidToken)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		UserID:      userID,
		EmpID:       claims.EmpID,
		TokenString: tokenString,
	}), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.cfg.TTL
}
