package main

import (
	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/database"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logger"
	"github.com/BabyGoatsInc/baby-goats-service/internal/notifier"
	"github.com/BabyGoatsInc/baby-goats-service/internal/router"
	"github.com/BabyGoatsInc/baby-goats-service/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	} else {
		logger.SetLevel(logger.ParseLogLevel(cfg.Log.Level))
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化Redis，失败时降级为数据库查询
	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect redis, leaderboard will fall back to database: %v", err)
		rdb = nil
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, rdb, cfg)

	// 启动定时任务
	manager, err := scheduler.Start(db, rdb, cfg)
	if err != nil {
		logger.Fatal("Failed to start scheduler: %v", err)
	}
	defer manager.Stop()

	// 启动通知投递器
	dispatcher, err := notifier.NewDispatcher(db, cfg)
	if err != nil {
		logger.Fatal("Failed to create notification dispatcher: %v", err)
	}
	dispatcher.Start()
	defer dispatcher.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
