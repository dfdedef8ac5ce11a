package scheduler

import (
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logger"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// ChallengeWindowJob 挑战窗口任务，按结束时间下架过期挑战
type ChallengeWindowJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewChallengeWindowJob 创建挑战窗口任务
func NewChallengeWindowJob(db *gorm.DB, cfg *config.Config) *ChallengeWindowJob {
	return &ChallengeWindowJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *ChallengeWindowJob) GetName() string {
	return "challenge_window_updater"
}

// GetSchedule 获取调度配置
func (j *ChallengeWindowJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.ChallengeInterval) * time.Second)
}

// Execute 执行任务
func (j *ChallengeWindowJob) Execute() {
	logger.Info("Starting challenge window update task")

	now := time.Now()

	// 下架已过结束时间的挑战
	result := j.db.Model(&model.ChallengeModel{}).
		Where("is_active = ? AND end_date IS NOT NULL AND end_date < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired challenges: %v", result.Error)
		return
	}

	logger.Info("Challenge window update completed. Deactivated %d challenges", result.RowsAffected)
}
