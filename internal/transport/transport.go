package transport

import (
	"net/http"
	"time"

	"github.com/ds124wfegd/WB_L3/promo/internal/transport/middleware"
	"github.com/gin-gonic/gin"
)

func InitRoutes(handler *RenderHandler, timeout time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())
	if timeout > 0 {
		router.Use(middleware.Timeout(timeout))
	}

	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := router.Group("/api")
	{
		api.GET("/campaigns", handler.ListCampaigns)
		api.POST("/campaigns/:name/render", handler.SubmitRender)
		api.GET("/jobs/:id", handler.GetJob)
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "promo-renderer",
		})
	})
	return router
}
