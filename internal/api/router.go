package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swapdash/telemetry-backend-go/internal/config"
	"github.com/swapdash/telemetry-backend-go/internal/handler"
	"github.com/swapdash/telemetry-backend-go/internal/middleware"
	"github.com/swapdash/telemetry-backend-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, dashboard *service.DashboardService) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Swap Telemetry API is running",
		})
	})

	sessions := handler.NewSessionHandler(dashboard)
	snapshots := handler.NewSnapshotHandler(dashboard)
	table := handler.NewTableHandler(dashboard)
	maps := handler.NewMapHandler(service.NewMapService(dashboard.Manager()))
	centroids := handler.NewCentroidHandler(service.NewCentroidService(dashboard.Manager()))
	exports := handler.NewExportHandler(dashboard)

	auth := middleware.Auth(cfg.JWTSecret)

	// API 路由组
	api := r.Group("/api/v1")
	{
		api.GET("/sessions", sessions.List)
		api.POST("/sessions", auth, sessions.Create)

		one := api.Group("/sessions/:id")
		{
			one.GET("", sessions.Describe)
			one.PUT("/tolerance", auth, sessions.SetTolerance)
			one.PUT("/dates", auth, sessions.SetDates)
			one.PUT("/pivot", auth, sessions.SetPivot)
			one.PUT("/split", auth, sessions.SetSplit)

			one.POST("/snapshots", auth, snapshots.Upload)
			one.POST("/snapshots/load", auth, snapshots.LoadPaths)

			one.GET("/table", table.GetTable)
			one.POST("/select", auth, table.SelectGroup)
			one.POST("/series/lock", auth, table.LockSeries)
			one.DELETE("/series/lock", auth, table.ClearLockedSeries)

			one.GET("/map/markers", maps.Markers)
			one.GET("/map/bounds", maps.SelectionBounds)

			one.GET("/centroids/:name", centroids.Detail)
			one.GET("/export/csv", exports.CSV)
		}
	}

	return r
}
