package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"ticketeer/internal/shared/config"
	"ticketeer/internal/shared/constants"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret}}

	r := gin.New()
	r.Use(RequestID())
	r.GET("/me", JWTAuthWithConfig(cfg), RequireRoles(constants.RoleUser), func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "tz": Location(c).String()})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	valid := Claims{
		UserID:   42,
		Role:     constants.RoleUser,
		TimeZone: "Europe/Minsk",
		Type:     "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"refresh token", "Bearer " + sign(t, func() Claims { c := valid; c.Type = "refresh"; return c }()), http.StatusUnauthorized},
		{"wrong role", "Bearer " + sign(t, func() Claims { c := valid; c.Role = constants.RoleVenueManager; return c }()), http.StatusForbidden},
		{"valid", "Bearer " + sign(t, valid), http.StatusOK},
	}

	engine := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.want == http.StatusOK {
				assert.JSONEq(t, `{"user_id":42,"tz":"Europe/Minsk"}`, w.Body.String())
			}
		})
	}
}

func TestRequestIDReusesHeader(t *testing.T) {
	engine := newEngine()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
