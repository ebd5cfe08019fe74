package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const serviceName = "Pension Scheme Calculator"

// LimitRequestBody caps the bytes a handler may read from the request body.
func LimitRequestBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// NewRouter registers the health check and the /api/v1 routes.
func NewRouter(pensionHandler *PensionHandler, payMatrixHandler *PayMatrixHandler, maxRequestBytes int64) *gin.Engine {
	router := gin.Default()
	router.Use(LimitRequestBody(maxRequestBytes))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		pension := api.Group("/pension")
		{
			pension.POST("/calculate", pensionHandler.Calculate)
			pension.POST("/report", pensionHandler.Report)
		}

		payMatrix := api.Group("/pay-matrix")
		{
			payMatrix.GET("", payMatrixHandler.List)
			payMatrix.GET("/:level", payMatrixHandler.Level)
			payMatrix.GET("/:level/next", payMatrixHandler.Next)
			payMatrix.GET("/:level/promotions", payMatrixHandler.Promotions)
		}
	}

	return router
}
