package logic

import (
	"fmt"
	"testing"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/database"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 为每个测试创建独立的内存数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.UserModel {
	t.Helper()

	user := model.UserModel{
		Uuid:         uuid.NewString(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		DisplayName:  username,
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return &user
}

// createTestTeam 创建队伍，第一个用户为队长，其余为普通队员
func createTestTeam(t *testing.T, db *gorm.DB, captain *model.UserModel, members ...*model.UserModel) *model.TeamModel {
	t.Helper()

	team := model.TeamModel{
		Name:      captain.Username + "'s team",
		Sport:     "soccer",
		CaptainId: captain.Id,
	}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("Failed to create test team: %v", err)
	}

	now := time.Now()
	captainMember := model.TeamMemberModel{
		TeamId:   team.Id,
		UserId:   captain.Id,
		Role:     model.MemberRoleCaptain,
		IsActive: true,
		JoinedAt: now,
	}
	if err := db.Create(&captainMember).Error; err != nil {
		t.Fatalf("Failed to create captain membership: %v", err)
	}

	for _, member := range members {
		m := model.TeamMemberModel{
			TeamId:   team.Id,
			UserId:   member.Id,
			Role:     model.MemberRoleMember,
			IsActive: true,
			JoinedAt: now,
		}
		if err := db.Create(&m).Error; err != nil {
			t.Fatalf("Failed to create membership for %s: %v", member.Username, err)
		}
	}
	return &team
}

// createTestChallenge 直接落库创建激活状态的挑战，绕过创建奖励
func createTestChallenge(t *testing.T, db *gorm.DB, creator *model.UserModel, challengeType model.ChallengeType, targetValue float64) *model.ChallengeModel {
	t.Helper()

	now := time.Now()
	end := now.AddDate(0, 0, 7)
	challenge := model.ChallengeModel{
		Title:                  "总进球数挑战",
		Description:            "一周内合计进球达标",
		Sport:                  "soccer",
		CreatorId:              creator.Id,
		ChallengeType:          challengeType,
		TargetMetric:           "total_goals",
		TargetValue:            targetValue,
		MinTeamSize:            2,
		MaxTeamSize:            10,
		TeamPointsReward:       100,
		IndividualPointsReward: 25,
		StartDate:              &now,
		EndDate:                &end,
		IsActive:               true,
	}
	if err := db.Create(&challenge).Error; err != nil {
		t.Fatalf("Failed to create test challenge: %v", err)
	}
	return &challenge
}

func countRows(t *testing.T, db *gorm.DB, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	if err := db.Model(value).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
