package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"svcmap/internal/http/controller"
	"svcmap/internal/http/middleware"
)

func NewRouter(handler *controller.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
		middleware.Metrics(),
		otelgin.Middleware("svcmap"),
	)

	router.GET("/health", func(c *gin.Context) {
		c.Status(200)
	})
	router.GET("/metrics", middleware.MetricsHandler())

	router.GET("/services", handler.ListServices)
	router.POST("/services", handler.CreateService)
	router.GET("/services/stats", handler.GetStats)
	router.GET("/services/categories", handler.GetCategories)
	router.GET("/services/organizations", handler.GetSourceOrganizations)
	router.GET("/services/nearby", handler.NearbyServices)
	router.GET("/services/:id", handler.GetService)

	router.GET("/map/view", handler.GetMapView)
	router.GET("/map/visible", handler.GetVisibleServices)
	router.POST("/map/center/:id", handler.CenterOnService)
	router.POST("/map/fit", handler.FitAllServices)

	router.GET("/events", handler.Events)

	return router
}
