package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"ticketeer/internal/shared/config"
	"ticketeer/internal/shared/constants"
	"ticketeer/internal/shared/utils/response"
	"ticketeer/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims is the access token payload issued by the identity service.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	TimeZone string `json:"time_zone,omitempty"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Authorization header is required", nil, nil)
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "authorization header format must be Bearer {token}", nil, nil)
			c.Abort()
			return
		}

		claims, err := ParseToken(parts[1], cfg.JWT.Secret)
		if err != nil {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), err.Error(), c.ClientIP())
			response.RespondJSON(c, "error", http.StatusUnauthorized, "invalid or expired token", nil, nil)
			c.Abort()
			return
		}

		c.Set(constants.CtxUserID, claims.UserID)
		c.Set(constants.CtxUserRole, claims.Role)
		c.Set(constants.CtxTimeZone, claims.TimeZone)
		c.Next()
	}
}

// OptionalAuthWithConfig sets the caller identity when a valid token is
// present and lets anonymous requests through.
func OptionalAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := ParseToken(parts[1], cfg.JWT.Secret); err == nil {
				c.Set(constants.CtxUserID, claims.UserID)
				c.Set(constants.CtxUserRole, claims.Role)
				c.Set(constants.CtxTimeZone, claims.TimeZone)
			}
		}
		c.Next()
	}
}

// ParseToken verifies an HMAC-signed access token.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	if claims.Type != "access" {
		return nil, fmt.Errorf("invalid token type %q", claims.Type)
	}
	if claims.UserID <= 0 {
		return nil, fmt.Errorf("token has no user id")
	}
	return claims, nil
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(constants.CtxUserRole)
		if userRole == "" {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "user role not found in context", nil, nil)
			c.Abort()
			return
		}

		for _, role := range requiredRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		response.RespondJSON(c, "error", http.StatusForbidden, "Insufficient permissions", nil, nil)
		c.Abort()
	}
}

// RequestID tags every request with an id, reusing X-Request-ID when the
// caller sent one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constants.CtxRequestID, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// RequestLogger logs every request after it completes.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		reqLog := l.WithRequestID(c.GetString(constants.CtxRequestID))
		if id, ok := UserID(c); ok {
			reqLog = reqLog.WithUserID(id)
		}
		reqLog.LogHTTPRequest(c, time.Since(start))
	}
}

// UserID returns the authenticated user id.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(constants.CtxUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok && id > 0
}

// Location returns the caller's preferred time zone, UTC when unknown.
func Location(c *gin.Context) *time.Location {
	name := c.GetString(constants.CtxTimeZone)
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
