package middleware

import (
	"fmt"
	"strings"
	"time"

	"studio-api/core/config"
	"studio-api/core/constants"
	"studio-api/core/controller"
	"studio-api/core/errors"
	"studio-api/core/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TokenData is the authenticated identity attached to the request
// context. UserID is the resolved host identity the booking engine
// trusts; all verification happens here, not downstream.
type TokenData struct {
	UserID uuid.UUID
	Email  string
	Scope  string
}

type Claims struct {
	Email string `json:"email"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type Middleware struct {
	base controller.BaseController
}

func NewMiddleware() *Middleware {
	return &Middleware{base: controller.NewBaseController()}
}

// AuthMiddleware validates the bearer token and stores TokenData in
// the echo context under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return m.base.Unauthorized(errors.ErrMissingAuthorizationHeader, "missing Authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return m.base.Unauthorized(errors.ErrInvalidTokenFormat, "expected Bearer token")
			}

			data, err := m.verifyToken(parts[1], constants.ScopeTokenAccess)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:VerifyFailed", "error", err)
				if ae, ok := err.(*errors.AppError); ok {
					return m.base.Unauthorized(ae.Code, ae.Message)
				}
				return m.base.Unauthorized(errors.ErrUnauthorized, "invalid token")
			}

			c.Set(constants.ContextTokenData, data)
			return next(c)
		}
	}
}

// verifyToken checks signature, expiry and scope. There is no
// pass-through mode: a token that does not verify is rejected.
func (m *Middleware) verifyToken(tokenString, wantScope string) (*TokenData, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		if strings.Contains(err.Error(), jwt.ErrTokenExpired.Error()) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrUnauthorized, "token verification failed", err)
	}
	if !token.Valid {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}
	if claims.Scope != wantScope {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "wrong token scope", nil)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid subject", err)
	}

	return &TokenData{
		UserID: userID,
		Email:  claims.Email,
		Scope:  claims.Scope,
	}, nil
}

// IssueToken signs a token for the given user and scope.
func IssueToken(userID uuid.UUID, email, scope string, ttl time.Duration) (string, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return "", errors.NewAppError(errors.ErrInternalServer, "config not initialized", nil)
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

// GetTokenData extracts the authenticated identity set by AuthMiddleware.
func GetTokenData(c echo.Context) (*TokenData, bool) {
	data, ok := c.Get(constants.ContextTokenData).(*TokenData)
	return data, ok && data != nil
}
