package logic

import (
	"fmt"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logger"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// TeamChallengeLogic 团队挑战参赛业务逻辑：报名、贡献账本、进度聚合、奖励发放
type TeamChallengeLogic struct {
	db                *gorm.DB
	pointLogic        *PointLogic
	notificationLogic *NotificationLogic
}

// NewTeamChallengeLogic 创建团队挑战业务逻辑
func NewTeamChallengeLogic(db *gorm.DB) *TeamChallengeLogic {
	return &TeamChallengeLogic{
		db:                db,
		pointLogic:        NewPointLogic(db),
		notificationLogic: NewNotificationLogic(db),
	}
}

// RegisterTeam 队伍报名参加挑战。
// 校验顺序固定：成员角色 → 挑战存在且激活 → 重复报名 → 队伍规模，
// 任何一步失败都不产生写入。
func (l *TeamChallengeLogic) RegisterTeam(challengeId, teamId, userId int64) (*model.ParticipationModel, error) {
	// 只有队长或副队长可以报名
	var membership model.TeamMemberModel
	err := l.db.Where("team_id = ? AND user_id = ? AND is_active = ?", teamId, userId, true).
		First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 不是该队伍的成员", ErrForbidden)
		}
		return nil, err
	}
	if membership.Role != model.MemberRoleCaptain && membership.Role != model.MemberRoleCoCaptain {
		return nil, fmt.Errorf("%w: 只有队长或副队长可以报名", ErrForbidden)
	}

	// 挑战必须存在且激活
	var challenge model.ChallengeModel
	if err := l.db.First(&challenge, challengeId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 挑战不存在", ErrNotFound)
		}
		return nil, err
	}
	if !challenge.IsActive {
		return nil, fmt.Errorf("%w: 挑战未开放报名", ErrInvalidState)
	}

	// 一支队伍对同一挑战只能报名一次，任何状态的旧记录都算
	var existing int64
	if err := l.db.Model(&model.ParticipationModel{}).
		Where("challenge_id = ? AND team_id = ?", challengeId, teamId).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: 队伍已报名该挑战", ErrConflict)
	}

	// 在编人数必须落在挑战要求的区间内
	members, err := l.activeMembers(l.db, teamId)
	if err != nil {
		return nil, err
	}
	if len(members) < challenge.MinTeamSize {
		return nil, fmt.Errorf("%w: 队伍人数不足，最少需要%d人", ErrInvalidState, challenge.MinTeamSize)
	}
	if len(members) > challenge.MaxTeamSize {
		return nil, fmt.Errorf("%w: 队伍人数超限，最多允许%d人", ErrInvalidState, challenge.MaxTeamSize)
	}

	participation := model.ParticipationModel{
		ChallengeId: challengeId,
		TeamId:      teamId,
		Status:      model.ParticipationStatusRegistered,
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&participation).Error; err != nil {
			return err
		}

		// 报名成功后通知每一位在编队员
		for _, member := range members {
			notifErr := l.notificationLogic.Create(tx, member.UserId,
				model.NotificationTypeChallengeRegistered,
				"队伍报名成功",
				fmt.Sprintf("你的队伍已报名挑战「%s」", challenge.Title),
				map[string]interface{}{
					"challenge_id":     challengeId,
					"participation_id": participation.Id,
				})
			if notifErr != nil {
				return notifErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &participation, nil
}

// SubmitContribution 追加一条个人贡献并重算队伍进度。
// 追加、重算、状态推进在同一事务内完成；完成转移用条件更新保护，
// 并发提交时只有赢得转移的那个请求会触发奖励发放。
func (l *TeamChallengeLogic) SubmitContribution(participationId, userId int64, value float64, contributionType string) (*model.ParticipationModel, error) {
	var participation model.ParticipationModel
	if err := l.db.First(&participation, participationId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 参赛记录不存在", ErrNotFound)
		}
		return nil, err
	}

	// 只有在编队员可以提交贡献
	var membership model.TeamMemberModel
	err := l.db.Where("team_id = ? AND user_id = ? AND is_active = ?", participation.TeamId, userId, true).
		First(&membership).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 不是该队伍的成员", ErrForbidden)
		}
		return nil, err
	}

	var challenge model.ChallengeModel
	if err := l.db.First(&challenge, participation.ChallengeId).Error; err != nil {
		return nil, fmt.Errorf("获取挑战定义失败: %w", err)
	}

	if contributionType == "" {
		contributionType = challenge.TargetMetric
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		// 追加账本记录，本实现自动核实，不做人工审核
		contribution := model.ContributionModel{
			ParticipationId:   participationId,
			UserId:            userId,
			ContributionValue: value,
			ContributionType:  contributionType,
			Verified:          true,
		}
		if err := tx.Create(&contribution).Error; err != nil {
			return err
		}

		// 进度永远从完整账本重算，缓存字段只是账本的投影
		var values []float64
		if err := tx.Model(&model.ContributionModel{}).
			Where("participation_id = ? AND verified = ?", participationId, true).
			Order("created_at ASC").
			Pluck("contribution_value", &values).Error; err != nil {
			return err
		}

		progress := ReduceProgress(challenge.ChallengeType, values)
		percentage := CompletionPercentage(progress, challenge.TargetValue)

		if progress >= challenge.TargetValue {
			now := time.Now()
			// 条件更新充当完成转移的互斥保护：只有一个请求能把状态改成completed
			result := tx.Model(&model.ParticipationModel{}).
				Where("id = ? AND status <> ?", participationId, model.ParticipationStatusCompleted).
				Updates(map[string]interface{}{
					"status":                model.ParticipationStatusCompleted,
					"completed_at":          now,
					"current_progress":      progress,
					"completion_percentage": percentage,
				})
			if result.Error != nil {
				return result.Error
			}

			if result.RowsAffected == 1 {
				return l.fanoutRewards(tx, &challenge, &participation)
			}

			// 已经完成过，只刷新进度缓存，completed_at 和奖励不再动
			return tx.Model(&model.ParticipationModel{}).
				Where("id = ?", participationId).
				Updates(map[string]interface{}{
					"current_progress":      progress,
					"completion_percentage": percentage,
				}).Error
		}

		// 进度缓存无条件刷新：协作型均值被新贡献拉低时，已完成的记录也要跟上账本
		if err := tx.Model(&model.ParticipationModel{}).
			Where("id = ?", participationId).
			Updates(map[string]interface{}{
				"current_progress":      progress,
				"completion_percentage": percentage,
			}).Error; err != nil {
			return err
		}

		// 首次贡献把报名状态推进为进行中，条件更新保证不回退已完成状态
		if participation.Status == model.ParticipationStatusRegistered {
			return tx.Model(&model.ParticipationModel{}).
				Where("id = ? AND status = ?", participationId, model.ParticipationStatusRegistered).
				Update("status", model.ParticipationStatusActive).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated model.ParticipationModel
	if err := l.db.First(&updated, participationId).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// fanoutRewards 向每位在编队员发放个人奖励并排队通知，只在完成转移时调用一次。
// 团队奖励记在队长的流水上。
func (l *TeamChallengeLogic) fanoutRewards(tx *gorm.DB, challenge *model.ChallengeModel, participation *model.ParticipationModel) error {
	members, err := l.activeMembers(tx, participation.TeamId)
	if err != nil {
		return err
	}

	for _, member := range members {
		description := fmt.Sprintf("完成挑战「%s」", challenge.Title)
		if err := l.pointLogic.Award(tx, member.UserId, challenge.IndividualPointsReward,
			model.PointCategoryChallengeReward, description, participation.Id); err != nil {
			return err
		}

		if err := l.notificationLogic.Create(tx, member.UserId,
			model.NotificationTypeChallengeCompleted,
			"挑战完成",
			fmt.Sprintf("你的队伍完成了挑战「%s」，获得%d积分", challenge.Title, challenge.IndividualPointsReward),
			map[string]interface{}{
				"challenge_id":     challenge.Id,
				"participation_id": participation.Id,
				"points":           challenge.IndividualPointsReward,
			}); err != nil {
			return err
		}

		if member.Role == model.MemberRoleCaptain && challenge.TeamPointsReward > 0 {
			teamDescription := fmt.Sprintf("队伍完成挑战「%s」", challenge.Title)
			if err := l.pointLogic.Award(tx, member.UserId, challenge.TeamPointsReward,
				model.PointCategoryTeamReward, teamDescription, participation.Id); err != nil {
				return err
			}
		}
	}

	logger.Info("Challenge %d completed by team %d, rewarded %d members",
		challenge.Id, participation.TeamId, len(members))
	return nil
}

// activeMembers 获取队伍在编成员
func (l *TeamChallengeLogic) activeMembers(tx *gorm.DB, teamId int64) ([]model.TeamMemberModel, error) {
	var members []model.TeamMemberModel
	if err := tx.Where("team_id = ? AND is_active = ?", teamId, true).
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("获取队伍成员失败: %w", err)
	}
	return members, nil
}

// ParticipationFilter 参赛记录查询过滤条件
type ParticipationFilter struct {
	ChallengeId int64
	TeamId      int64
	UserId      int64
	Sport       string
	Status      string
}

// GetParticipations 按条件查询参赛记录
func (l *TeamChallengeLogic) GetParticipations(filter ParticipationFilter, page, pageSize int) ([]model.ParticipationModel, int64, error) {
	var participations []model.ParticipationModel
	var total int64

	query := l.db.Model(&model.ParticipationModel{})
	if filter.ChallengeId > 0 {
		query = query.Where("challenge_participation.challenge_id = ?", filter.ChallengeId)
	}
	if filter.TeamId > 0 {
		query = query.Where("challenge_participation.team_id = ?", filter.TeamId)
	}
	if filter.Status != "" {
		query = query.Where("challenge_participation.status = ?", filter.Status)
	}
	if filter.UserId > 0 {
		query = query.Joins("JOIN team_member ON team_member.team_id = challenge_participation.team_id").
			Where("team_member.user_id = ? AND team_member.is_active = ?", filter.UserId, true)
	}
	if filter.Sport != "" {
		query = query.Joins("JOIN team_challenge ON team_challenge.id = challenge_participation.challenge_id").
			Where("team_challenge.sport = ?", filter.Sport)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("challenge_participation.created_at DESC").
		Find(&participations).Error; err != nil {
		return nil, 0, err
	}

	return participations, total, nil
}

// GetContributions 获取参赛记录的贡献账本，按提交顺序返回
func (l *TeamChallengeLogic) GetContributions(participationId int64) ([]model.ContributionModel, error) {
	var contributions []model.ContributionModel
	if err := l.db.Where("participation_id = ?", participationId).
		Order("created_at ASC").
		Find(&contributions).Error; err != nil {
		return nil, err
	}
	return contributions, nil
}
