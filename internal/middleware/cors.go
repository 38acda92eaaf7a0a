package middleware

import (
	"net/http"
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/logger"
	"github.com/cleberrangel/edge-relay-api/internal/model"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// OriginChecker decide se uma origem de navegador é confiável
type OriginChecker interface {
	Allowed(origin string) bool
}

// CORS emite os headers CORS apenas para origens aprovadas pelo gate.
// Preflight de origem não aprovada (ou sem Origin) recebe 204 sem headers.
func CORS(gate OriginChecker) gin.HandlerFunc {
	withHeaders := cors.New(cors.Config{
		AllowOriginFunc: gate.Allowed,
		AllowMethods:    []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type"},
		MaxAge:          24 * time.Hour,
	})

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && gate.Allowed(origin) {
			withHeaders(c)
			return
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequireOrigin bloqueia com 403 requisições sem Origin aprovada
func RequireOrigin(gate OriginChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if gate.Allowed(origin) {
			c.Next()
			return
		}

		logger.FromGin(c).Warn().
			Str("origin", origin).
			Str("path", c.Request.URL.Path).
			Msg("Origem recusada")
		logger.Audit(c.Request.Context(), logger.AuditEvent{
			Action:   logger.AuditActionOriginDenied,
			Resource: c.Request.URL.Path,
			ClientIP: c.ClientIP(),
			Origin:   origin,
			Success:  false,
		})

		apiErr := model.NewForbiddenOrigin()
		c.AbortWithStatusJSON(apiErr.Status, model.ContactResponse{
			OK:    false,
			Error: apiErr.Message,
		})
	}
}
