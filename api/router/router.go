package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/t3rryhuang/Sentiment-Insight/api/handlers"
	"github.com/t3rryhuang/Sentiment-Insight/db"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

func New() *gin.Engine {
	r := gin.Default()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "postgres": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	api := r.Group("/api/v1")
	{
		entities := repositories.NewTrackedEntityRepository(db.Conn())
		condensedLogs := repositories.NewMetricLogCondensedRepository(db.Conn())
		insight := services.NewInsightService(entities, condensedLogs)

		api.GET("/entities/suggest", handlers.SuggestEntitiesHandler(insight))
		api.GET("/entities/:setID/series", handlers.SeriesHandler(insight))
		api.GET("/entities/:setID/net-severity", handlers.NetSeverityHandler(insight))
	}

	return r
}
