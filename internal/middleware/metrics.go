package middleware

import (
	"net/http"
	"time"

	"github.com/cleberrangel/edge-relay-api/internal/metrics"
	"github.com/gin-gonic/gin"
)

const (
	// unmatchedPath agrupa rotas inexistentes num único label
	unmatchedPath = "unmatched"
	// otherMethod agrupa métodos HTTP fora do conjunto conhecido
	otherMethod = "other"
)

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodOptions: {},
}

// Metrics registra a latência de cada requisição por rota
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Usa o template da rota para não explodir a cardinalidade dos labels
		path := c.FullPath()
		if path == "" {
			path = unmatchedPath
		}
		metrics.RecordHTTPRequest(methodLabel(c.Request.Method), path, c.Writer.Status(), time.Since(start))
	}
}

// methodLabel limita o label "method" a um conjunto fixo de valores
func methodLabel(method string) string {
	if _, ok := knownMethods[method]; ok {
		return method
	}
	return otherMethod
}
