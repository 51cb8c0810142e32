package main

import (
	"context"
	"log"

	"github.com/swapdash/telemetry-backend-go/internal/api"
	"github.com/swapdash/telemetry-backend-go/internal/config"
	"github.com/swapdash/telemetry-backend-go/internal/ingest"
	"github.com/swapdash/telemetry-backend-go/internal/service"
	"github.com/swapdash/telemetry-backend-go/internal/session"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	manager := session.NewManager(cfg.DefaultTolerance(), cfg.MaxPivotDepth)
	dashboard := service.NewDashboardService(manager, cfg.ToleranceScale)

	// Snapshot directory watcher feeds a dedicated session so daily
	// exports dropped on disk show up without an upload.
	if cfg.WatchSnapshots {
		watched := manager.Create()
		log.Printf("Watching %s into session %s", cfg.SnapshotDir, watched.ID)
		watcher := ingest.NewWatcher(cfg.SnapshotDir, func(path string) {
			dashboard.LoadWatchedFile(watched.ID, path)
		})
		go func() {
			if err := watcher.Run(context.Background()); err != nil {
				log.Printf("Snapshot watcher stopped: %v", err)
			}
		}()
	}

	// 初始化路由
	router := api.SetupRouter(cfg, dashboard)

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
