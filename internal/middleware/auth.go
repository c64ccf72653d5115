package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/escala-voluntarios/internal/config"
	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

const (
	ContextAdmin = "admin"
	ContextRole  = "role"

	SessionCookie = "escala_admin"
	RoleAdmin     = "admin"
)

// AuthMiddleware aceita o token no header Authorization (Bearer) ou no
// cookie de sessão emitido pelo login.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := tokenFrom(c)
		if !ok {
			abortUnauthorized(c, "missing_token")
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if sub == "" || role != RoleAdmin {
			abortUnauthorized(c, "invalid_token_payload")
			return
		}

		c.Set(ContextAdmin, sub)
		c.Set(ContextRole, role)

		c.Next()
	}
}

func tokenFrom(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie, true
	}
	return "", false
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Sessão inválida ou expirada. Faça login novamente.")
	c.Abort()
}
