package database

import (
	"fmt"

	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// Migrate 自动迁移所有模型
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.UserModel{},
		&model.StatRecordModel{},
		&model.TeamModel{},
		&model.TeamMemberModel{},
		&model.ChallengeModel{},
		&model.ParticipationModel{},
		&model.ContributionModel{},
		&model.PointTransactionModel{},
		&model.NotificationModel{},
		&model.FriendshipModel{},
		&model.MessageModel{},
		&model.HighlightModel{},
		&model.LiveStreamModel{},
	)
}
