package logic

import (
	"errors"
	"testing"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
)

func validChallenge(creatorId int64) *model.ChallengeModel {
	return &model.ChallengeModel{
		Title:                  "冲刺训练挑战",
		Description:            "两周内累计冲刺距离达标",
		Sport:                  "soccer",
		CreatorId:              creatorId,
		ChallengeType:          model.ChallengeTypeCumulative,
		TargetMetric:           "sprint_meters",
		TargetValue:            5000,
		MinTeamSize:            2,
		MaxTeamSize:            8,
		TeamPointsReward:       200,
		IndividualPointsReward: 50,
	}
}

func TestCreateChallenge(t *testing.T) {
	db := setupTestDB(t)
	l := NewChallengeLogic(db)

	creator := createTestUser(t, db, "coach")
	challenge := validChallenge(creator.Id)

	if err := l.CreateChallenge(challenge, 14); err != nil {
		t.Fatalf("CreateChallenge() failed: %v", err)
	}

	if !challenge.IsActive {
		t.Error("new challenge not active")
	}
	if challenge.StartDate == nil {
		t.Fatal("StartDate not defaulted")
	}
	if challenge.EndDate == nil {
		t.Fatal("EndDate not computed")
	}
	wantEnd := challenge.StartDate.AddDate(0, 0, 14)
	if !challenge.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", challenge.EndDate, wantEnd)
	}

	// 创建者获得固定的内容创作奖励
	var creatorAfter model.UserModel
	if err := db.First(&creatorAfter, creator.Id).Error; err != nil {
		t.Fatalf("Failed to reload creator: %v", err)
	}
	if creatorAfter.TotalPoints != CreatorPointsReward {
		t.Errorf("creator TotalPoints = %d, want %d", creatorAfter.TotalPoints, CreatorPointsReward)
	}

	rewards := countRows(t, db, &model.PointTransactionModel{},
		"user_id = ? AND category = ?", creator.Id, model.PointCategoryContentCreation)
	if rewards != 1 {
		t.Errorf("content creation transactions = %d, want 1", rewards)
	}
}

func TestCreateChallengeKeepsExplicitStartDate(t *testing.T) {
	db := setupTestDB(t)
	l := NewChallengeLogic(db)

	creator := createTestUser(t, db, "coach")
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	challenge := validChallenge(creator.Id)
	challenge.StartDate = &start

	if err := l.CreateChallenge(challenge, 7); err != nil {
		t.Fatalf("CreateChallenge() failed: %v", err)
	}
	if !challenge.StartDate.Equal(start) {
		t.Errorf("StartDate = %v, want %v", challenge.StartDate, start)
	}
	if !challenge.EndDate.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("EndDate = %v, want %v", challenge.EndDate, start.AddDate(0, 0, 7))
	}
}

func TestCreateChallengeValidation(t *testing.T) {
	db := setupTestDB(t)
	l := NewChallengeLogic(db)
	creator := createTestUser(t, db, "coach")

	tests := []struct {
		name   string
		mutate func(*model.ChallengeModel)
	}{
		{"missing title", func(c *model.ChallengeModel) { c.Title = "" }},
		{"missing description", func(c *model.ChallengeModel) { c.Description = "" }},
		{"invalid challenge type", func(c *model.ChallengeModel) { c.ChallengeType = "team_effort" }},
		{"missing target metric", func(c *model.ChallengeModel) { c.TargetMetric = "" }},
		{"non-positive target value", func(c *model.ChallengeModel) { c.TargetValue = 0 }},
		{"min team size below one", func(c *model.ChallengeModel) { c.MinTeamSize = 0 }},
		{"max below min", func(c *model.ChallengeModel) { c.MaxTeamSize = 1 }},
		{"negative team reward", func(c *model.ChallengeModel) { c.TeamPointsReward = -1 }},
		{"negative individual reward", func(c *model.ChallengeModel) { c.IndividualPointsReward = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			challenge := validChallenge(creator.Id)
			tt.mutate(challenge)

			err := l.CreateChallenge(challenge, 7)
			if !errors.Is(err, ErrBadRequest) {
				t.Errorf("CreateChallenge() = %v, want ErrBadRequest", err)
			}
		})
	}

	// 校验失败不能留下任何挑战或积分记录
	if n := countRows(t, db, &model.ChallengeModel{}, "creator_id = ?", creator.Id); n != 0 {
		t.Errorf("challenge rows after failed validations = %d, want 0", n)
	}
	if n := countRows(t, db, &model.PointTransactionModel{}, "user_id = ?", creator.Id); n != 0 {
		t.Errorf("point transactions after failed validations = %d, want 0", n)
	}
}

func TestDeactivateChallenge(t *testing.T) {
	db := setupTestDB(t)
	l := NewChallengeLogic(db)

	creator := createTestUser(t, db, "coach")
	other := createTestUser(t, db, "stranger")
	challenge := createTestChallenge(t, db, creator, model.ChallengeTypeCumulative, 100)

	if err := l.DeactivateChallenge(challenge.Id, other.Id); !errors.Is(err, ErrForbidden) {
		t.Errorf("DeactivateChallenge() by non-creator = %v, want ErrForbidden", err)
	}

	if err := l.DeactivateChallenge(challenge.Id, creator.Id); err != nil {
		t.Fatalf("DeactivateChallenge() by creator failed: %v", err)
	}

	reloaded, err := l.GetChallenge(challenge.Id)
	if err != nil {
		t.Fatalf("GetChallenge() failed: %v", err)
	}
	if reloaded.IsActive {
		t.Error("challenge still active after deactivation")
	}

	if err := l.DeactivateChallenge(99999, creator.Id); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeactivateChallenge() missing challenge = %v, want ErrNotFound", err)
	}
}
