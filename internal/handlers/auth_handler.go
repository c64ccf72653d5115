package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httpresp"
	"github.com/BruksfildServices01/escala-voluntarios/internal/middleware"
)

type AuthHandler struct {
	config *config.Config
	hash   []byte
	ttl    time.Duration
}

// NewAuthHandler usa ADMIN_PASSWORD_HASH quando presente; senão gera o
// hash da senha em texto na inicialização.
func NewAuthHandler(cfg *config.Config) (*AuthHandler, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	ttl := time.Duration(cfg.SessionHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &AuthHandler{config: cfg, hash: hash, ttl: ttl}, nil
}

// --------- Requests ---------

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.hash, []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Senha incorreta.")
		return
	}

	token, expires, err := h.generateToken()
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", httperr.MessageFor(httperr.CodeStoreUnavailable))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.ttl.Seconds()), "/", "", c.Request.TLS != nil, true)

	httpresp.OK(c, gin.H{
		"token":      token,
		"expires_at": expires,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	httpresp.NoContent(c)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken() (string, time.Time, error) {
	now := time.Now()
	expires := now.Add(h.ttl)

	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": middleware.RoleAdmin,
		"exp":  expires.Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.config.JWTSecret))
	return signed, expires, err
}
