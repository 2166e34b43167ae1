package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ticketeer/internal/shared/config"
	"ticketeer/internal/shared/constants"
	"ticketeer/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerTagsAuthenticatedUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: secret}}

	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger.NewWithHandler(slog.NewJSONHandler(&buf, nil))))
	r.GET("/public", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/private", JWTAuthWithConfig(cfg), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	logged := func(t *testing.T, req *http.Request) map[string]any {
		t.Helper()
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), req)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, "HTTP Request", line["msg"])
		assert.NotEmpty(t, line["request_id"])
		return line
	}

	t.Run("anonymous", func(t *testing.T) {
		line := logged(t, httptest.NewRequest(http.MethodGet, "/public", nil))
		assert.NotContains(t, line, "user_id")
	})

	t.Run("authenticated", func(t *testing.T) {
		token := sign(t, Claims{
			UserID: 42,
			Role:   constants.RoleUser,
			Type:   "access",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		line := logged(t, req)
		assert.EqualValues(t, 42, line["user_id"])
		assert.EqualValues(t, http.StatusNoContent, line["status"])
	})
}
