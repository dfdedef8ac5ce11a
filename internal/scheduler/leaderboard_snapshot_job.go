package scheduler

import (
	"context"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logger"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LeaderboardSnapshotJob 排行榜快照任务，定期重建Redis排行榜缓存
type LeaderboardSnapshotJob struct {
	leaderboardLogic *logic.LeaderboardLogic
	config           *config.Config
}

// NewLeaderboardSnapshotJob 创建排行榜快照任务
func NewLeaderboardSnapshotJob(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *LeaderboardSnapshotJob {
	return &LeaderboardSnapshotJob{
		leaderboardLogic: logic.NewLeaderboardLogic(db, rdb),
		config:           cfg,
	}
}

// GetName 获取任务名称
func (j *LeaderboardSnapshotJob) GetName() string {
	return "leaderboard_snapshot"
}

// GetSchedule 获取调度配置
func (j *LeaderboardSnapshotJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.LeaderboardInterval) * time.Second)
}

// Execute 执行任务
func (j *LeaderboardSnapshotJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := j.leaderboardLogic.RebuildCache(ctx); err != nil {
		logger.Error("Failed to rebuild leaderboard cache: %v", err)
		return
	}
	logger.Info("Leaderboard cache rebuilt")
}
