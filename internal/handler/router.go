package handler

import (
	"net/http"

	"github.com/cleberrangel/edge-relay-api/internal/estimator"
	"github.com/cleberrangel/edge-relay-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RouterDeps reúne as dependências das rotas públicas
type RouterDeps struct {
	Version   string
	Gate      middleware.OriginChecker
	Relayer   Relayer
	Estimator *estimator.Service
	Dev       bool
}

// NewRouter monta o engine com middlewares e rotas /v1
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	// Caminho com barra final é 404, não redirect
	r.RedirectTrailingSlash = false
	r.Use(middleware.RequestID()) // Request ID + logging estruturado
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(deps.Gate))

	health := NewHealthHandler(deps.Version)
	contact := NewContactHandler(deps.Relayer, deps.Dev)
	tonight := NewEstimatorHandler(deps.Estimator)

	v1 := r.Group("/v1")
	{
		v1.GET("/health", health.LivenessCheck)
		v1.POST("/contact/send", middleware.RequireOrigin(deps.Gate), contact.Send)
		v1.POST("/estimator/tonight", tonight.Tonight)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})

	return r
}
