package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
	"github.com/BruksfildServices01/escala-voluntarios/internal/ratelimit"
)

// RateLimit limita por IP. Se o limitador falhar (Redis fora do ar) o
// pedido segue.
func RateLimit(l ratelimit.Limiter, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			httperr.TooManyRequests(c, "too_many_requests", "Muitas tentativas. Aguarde um minuto e tente novamente.")
			c.Abort()
			return
		}
		c.Next()
	}
}
