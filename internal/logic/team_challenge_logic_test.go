package logic

import (
	"errors"
	"testing"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

func TestRegisterTeam(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	team := createTestTeam(t, db, captain, alice, bob)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}
	if participation.Status != model.ParticipationStatusRegistered {
		t.Errorf("Status = %s, want %s", participation.Status, model.ParticipationStatusRegistered)
	}

	// 报名通知发给全部3名在编队员
	notified := countRows(t, db, &model.NotificationModel{},
		"type = ?", model.NotificationTypeChallengeRegistered)
	if notified != 3 {
		t.Errorf("registration notifications = %d, want 3", notified)
	}
}

func TestRegisterTeamOrdinaryMemberForbidden(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	_, err := l.RegisterTeam(challenge.Id, team.Id, alice.Id)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("RegisterTeam() by ordinary member = %v, want ErrForbidden", err)
	}

	outsider := createTestUser(t, db, "outsider")
	_, err = l.RegisterTeam(challenge.Id, team.Id, outsider.Id)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("RegisterTeam() by non-member = %v, want ErrForbidden", err)
	}
}

func TestRegisterTeamChallengeChecks(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)

	_, err := l.RegisterTeam(99999, team.Id, captain.Id)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RegisterTeam() for missing challenge = %v, want ErrNotFound", err)
	}

	inactive := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("Failed to deactivate challenge: %v", err)
	}
	_, err = l.RegisterTeam(inactive.Id, team.Id, captain.Id)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("RegisterTeam() for inactive challenge = %v, want ErrInvalidState", err)
	}
}

func TestRegisterTeamDuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	if _, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id); err != nil {
		t.Fatalf("first RegisterTeam() failed: %v", err)
	}

	_, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate RegisterTeam() = %v, want ErrConflict", err)
	}
}

func TestRegisterTeamSizeBounds(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	team := createTestTeam(t, db, captain) // 只有队长一人，低于最小规模2
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	_, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if !errors.Is(err, ErrInvalidState) {
		t.Errorf("RegisterTeam() undersized team = %v, want ErrInvalidState", err)
	}

	// 校验失败不能留下参赛记录
	remaining := countRows(t, db, &model.ParticipationModel{}, "team_id = ?", team.Id)
	if remaining != 0 {
		t.Errorf("participation rows after failed registration = %d, want 0", remaining)
	}
}

func TestCumulativeChallengeCompletion(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	team := createTestTeam(t, db, captain, alice, bob)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	// 第一笔贡献把状态推进为进行中
	updated, err := l.SubmitContribution(participation.Id, captain.Id, 40, "")
	if err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	if updated.Status != model.ParticipationStatusActive {
		t.Errorf("Status after first contribution = %s, want active", updated.Status)
	}
	if updated.CurrentProgress != 40 {
		t.Errorf("CurrentProgress = %v, want 40", updated.CurrentProgress)
	}

	if _, err := l.SubmitContribution(participation.Id, alice.Id, 35, ""); err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}

	// 第三笔贡献使总和达到105，超过目标100
	updated, err = l.SubmitContribution(participation.Id, bob.Id, 30, "")
	if err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	if updated.Status != model.ParticipationStatusCompleted {
		t.Errorf("Status = %s, want completed", updated.Status)
	}
	if updated.CurrentProgress != 105 {
		t.Errorf("CurrentProgress = %v, want 105", updated.CurrentProgress)
	}
	if updated.CompletionPercentage != 100 {
		t.Errorf("CompletionPercentage = %v, want 100 (clamped)", updated.CompletionPercentage)
	}
	if updated.CompletedAt == nil {
		t.Error("CompletedAt not set on completion")
	}

	// 每名队员各得一份个人奖励
	individual := countRows(t, db, &model.PointTransactionModel{},
		"category = ? AND reference_id = ?", model.PointCategoryChallengeReward, participation.Id)
	if individual != 3 {
		t.Errorf("individual reward transactions = %d, want 3", individual)
	}

	// 团队奖励只记在队长名下
	teamReward := countRows(t, db, &model.PointTransactionModel{},
		"category = ? AND reference_id = ?", model.PointCategoryTeamReward, participation.Id)
	if teamReward != 1 {
		t.Errorf("team reward transactions = %d, want 1", teamReward)
	}

	var captainAfter model.UserModel
	if err := db.First(&captainAfter, captain.Id).Error; err != nil {
		t.Fatalf("Failed to reload captain: %v", err)
	}
	if captainAfter.TotalPoints != 125 {
		t.Errorf("captain TotalPoints = %d, want 125 (25 individual + 100 team)", captainAfter.TotalPoints)
	}

	completed := countRows(t, db, &model.NotificationModel{},
		"type = ?", model.NotificationTypeChallengeCompleted)
	if completed != 3 {
		t.Errorf("completion notifications = %d, want 3", completed)
	}
}

func TestCompetitiveChallengeTakesMax(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	team := createTestTeam(t, db, captain, alice, bob)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCompetitive, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	for _, c := range []struct {
		userId int64
		value  float64
	}{
		{captain.Id, 40},
		{alice.Id, 35},
		{bob.Id, 90},
	} {
		if _, err := l.SubmitContribution(participation.Id, c.userId, c.value, ""); err != nil {
			t.Fatalf("SubmitContribution(%v) failed: %v", c.value, err)
		}
	}

	var updated model.ParticipationModel
	if err := db.First(&updated, participation.Id).Error; err != nil {
		t.Fatalf("Failed to reload participation: %v", err)
	}
	if updated.CurrentProgress != 90 {
		t.Errorf("CurrentProgress = %v, want 90 (best single contribution)", updated.CurrentProgress)
	}
	if updated.Status != model.ParticipationStatusActive {
		t.Errorf("Status = %s, want active (target not reached)", updated.Status)
	}

	rewards := countRows(t, db, &model.PointTransactionModel{},
		"reference_id = ?", participation.Id)
	if rewards != 0 {
		t.Errorf("reward transactions before completion = %d, want 0", rewards)
	}
}

func TestCollaborativeChallengeAveragesContributions(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCollaborative, 50)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	if _, err := l.SubmitContribution(participation.Id, captain.Id, 60, ""); err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}

	updated, err := l.SubmitContribution(participation.Id, alice.Id, 40, "")
	if err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	if updated.CurrentProgress != 50 {
		t.Errorf("CurrentProgress = %v, want 50 (mean of 60 and 40)", updated.CurrentProgress)
	}
	if updated.Status != model.ParticipationStatusCompleted {
		t.Errorf("Status = %s, want completed", updated.Status)
	}
}

func TestCompletionRewardsFanOutOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	completed, err := l.SubmitContribution(participation.Id, captain.Id, 120, "")
	if err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	if completed.Status != model.ParticipationStatusCompleted {
		t.Fatalf("Status = %s, want completed", completed.Status)
	}
	completedAt := *completed.CompletedAt

	rewardsBefore := countRows(t, db, &model.PointTransactionModel{},
		"reference_id = ?", participation.Id)

	// 完成之后继续提交：账本照常追加，进度缓存刷新，但不再发奖
	after, err := l.SubmitContribution(participation.Id, alice.Id, 30, "")
	if err != nil {
		t.Fatalf("SubmitContribution() after completion failed: %v", err)
	}
	if after.Status != model.ParticipationStatusCompleted {
		t.Errorf("Status = %s, want completed", after.Status)
	}
	if after.CurrentProgress != 150 {
		t.Errorf("CurrentProgress = %v, want 150", after.CurrentProgress)
	}
	if after.CompletedAt == nil || !after.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt changed after completion: %v -> %v", completedAt, after.CompletedAt)
	}

	rewardsAfter := countRows(t, db, &model.PointTransactionModel{},
		"reference_id = ?", participation.Id)
	if rewardsAfter != rewardsBefore {
		t.Errorf("reward transactions changed after completion: %d -> %d", rewardsBefore, rewardsAfter)
	}

	ledger := countRows(t, db, &model.ContributionModel{}, "participation_id = ?", participation.Id)
	if ledger != 2 {
		t.Errorf("ledger entries = %d, want 2", ledger)
	}
}

func TestCollaborativeProgressTracksLedgerAfterCompletion(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCollaborative, 50)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	if _, err := l.SubmitContribution(participation.Id, captain.Id, 60, ""); err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	completed, err := l.SubmitContribution(participation.Id, alice.Id, 40, "")
	if err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	if completed.Status != model.ParticipationStatusCompleted {
		t.Fatalf("Status = %s, want completed", completed.Status)
	}
	completedAt := *completed.CompletedAt

	rewardsBefore := countRows(t, db, &model.PointTransactionModel{},
		"reference_id = ?", participation.Id)

	// 第三笔贡献把均值拉回目标以下：缓存跟随账本下降，状态保持已完成
	after, err := l.SubmitContribution(participation.Id, captain.Id, 20, "")
	if err != nil {
		t.Fatalf("SubmitContribution() after completion failed: %v", err)
	}
	if after.CurrentProgress != 40 {
		t.Errorf("CurrentProgress = %v, want 40 (mean of 60, 40, 20)", after.CurrentProgress)
	}
	if after.CompletionPercentage != 80 {
		t.Errorf("CompletionPercentage = %v, want 80", after.CompletionPercentage)
	}
	if after.Status != model.ParticipationStatusCompleted {
		t.Errorf("Status = %s, want completed (never regresses)", after.Status)
	}
	if after.CompletedAt == nil || !after.CompletedAt.Equal(completedAt) {
		t.Errorf("CompletedAt changed after completion: %v -> %v", completedAt, after.CompletedAt)
	}

	rewardsAfter := countRows(t, db, &model.PointTransactionModel{},
		"reference_id = ?", participation.Id)
	if rewardsAfter != rewardsBefore {
		t.Errorf("reward transactions changed after completion: %d -> %d", rewardsBefore, rewardsAfter)
	}
}

func TestSubmitContributionGuards(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	_, err = l.SubmitContribution(99999, captain.Id, 10, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("SubmitContribution() missing participation = %v, want ErrNotFound", err)
	}

	outsider := createTestUser(t, db, "outsider")
	_, err = l.SubmitContribution(participation.Id, outsider.Id, 10, "")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("SubmitContribution() by non-member = %v, want ErrForbidden", err)
	}

	// 贡献类型缺省取挑战的目标指标
	if _, err := l.SubmitContribution(participation.Id, captain.Id, 10, ""); err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	var contribution model.ContributionModel
	if err := db.Where("participation_id = ?", participation.Id).First(&contribution).Error; err != nil {
		t.Fatalf("Failed to load contribution: %v", err)
	}
	if contribution.ContributionType != challenge.TargetMetric {
		t.Errorf("ContributionType = %s, want %s", contribution.ContributionType, challenge.TargetMetric)
	}
	if !contribution.Verified {
		t.Error("contribution not auto-verified")
	}
}

func TestGetParticipationsFilters(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	byChallenge, total, err := l.GetParticipations(ParticipationFilter{ChallengeId: challenge.Id}, 1, 20)
	if err != nil {
		t.Fatalf("GetParticipations() by challenge failed: %v", err)
	}
	if total != 1 || len(byChallenge) != 1 || byChallenge[0].Id != participation.Id {
		t.Errorf("filter by challenge returned %d rows (total %d)", len(byChallenge), total)
	}

	byUser, total, err := l.GetParticipations(ParticipationFilter{UserId: alice.Id}, 1, 20)
	if err != nil {
		t.Fatalf("GetParticipations() by user failed: %v", err)
	}
	if total != 1 || len(byUser) != 1 {
		t.Errorf("filter by member returned %d rows (total %d), want 1", len(byUser), total)
	}

	none, total, err := l.GetParticipations(ParticipationFilter{Status: string(model.ParticipationStatusCompleted)}, 1, 20)
	if err != nil {
		t.Fatalf("GetParticipations() by status failed: %v", err)
	}
	if total != 0 || len(none) != 0 {
		t.Errorf("filter by completed status returned %d rows, want 0", len(none))
	}
}

func TestProgressRecomputedFromLedger(t *testing.T) {
	db := setupTestDB(t)
	l := NewTeamChallengeLogic(db)

	captain := createTestUser(t, db, "captain")
	alice := createTestUser(t, db, "alice")
	team := createTestTeam(t, db, captain, alice)
	challenge := createTestChallenge(t, db, captain, model.ChallengeTypeCumulative, 100)

	participation, err := l.RegisterTeam(challenge.Id, team.Id, captain.Id)
	if err != nil {
		t.Fatalf("RegisterTeam() failed: %v", err)
	}

	if _, err := l.SubmitContribution(participation.Id, captain.Id, 30, ""); err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}

	// 人为破坏缓存字段，下一次提交必须从账本整体重算修复
	if err := db.Model(&model.ParticipationModel{}).
		Where("id = ?", participation.Id).
		Update("current_progress", gorm.Expr("current_progress + 500")).Error; err != nil {
		t.Fatalf("Failed to corrupt cached progress: %v", err)
	}

	updated, err := l.SubmitContribution(participation.Id, alice.Id, 20, "")
	if err != nil {
		t.Fatalf("SubmitContribution() failed: %v", err)
	}
	if updated.CurrentProgress != 50 {
		t.Errorf("CurrentProgress = %v, want 50 (recomputed from ledger)", updated.CurrentProgress)
	}
}
