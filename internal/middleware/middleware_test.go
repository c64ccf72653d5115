package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.GET("/admin", AuthMiddleware(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextAdmin))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "segredo-de-teste"}
	r := authRouter(cfg)

	valid := sign(t, cfg.JWTSecret, jwt.MapClaims{"sub": "admin", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	expired := sign(t, cfg.JWTSecret, jwt.MapClaims{"sub": "admin", "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()})
	wrongRole := sign(t, cfg.JWTSecret, jwt.MapClaims{"sub": "admin", "role": "volunteer", "exp": time.Now().Add(time.Hour).Unix()})
	otherKey := sign(t, "outra-chave", jwt.MapClaims{"sub": "admin", "role": "admin", "exp": time.Now().Add(time.Hour).Unix()})

	cases := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"bearer", "Bearer " + valid, "", http.StatusOK},
		{"cookie", "", valid, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"malformed header", "Token " + valid, "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, "", http.StatusUnauthorized},
		{"wrong role", "Bearer " + wrongRole, "", http.StatusUnauthorized},
		{"wrong key", "Bearer " + otherKey, "", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error_code"`)
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(zap.NewNop()))
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware_ConfiguredOrigins(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://escala.example.org"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://escala.example.org")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://escala.example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

type stubLimiter struct {
	allow bool
	err   error
}

func (s stubLimiter) Allow(context.Context, string) (bool, error) { return s.allow, s.err }

func TestRateLimit(t *testing.T) {
	run := func(l stubLimiter) int {
		r := gin.New()
		r.POST("/b", RateLimit(l, zap.NewNop()), func(c *gin.Context) { c.Status(http.StatusCreated) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/b", nil))
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, run(stubLimiter{allow: true}))
	assert.Equal(t, http.StatusTooManyRequests, run(stubLimiter{allow: false}))
	assert.Equal(t, http.StatusCreated, run(stubLimiter{err: errors.New("redis down")}), "fails open")
}
