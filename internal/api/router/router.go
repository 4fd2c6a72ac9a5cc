package router

import (
	"net/http"

	"github.com/bqtran/translation-service/internal/api/handler"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "translation-api-service",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	translationHandler := handler.NewTranslationHandler(deps)

	// POST /translations - submit a translation request
	r.POST("/translations", translationHandler.CreateTranslation)

	// GET /translations/:requestId - query request status
	r.GET("/translations/:requestId", translationHandler.GetTranslation)

	return r
}
