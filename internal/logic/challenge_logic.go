package logic

import (
	"fmt"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// CreatorPointsReward 创建挑战内容的固定奖励积分
const CreatorPointsReward = 50

// ChallengeLogic 挑战定义业务逻辑
type ChallengeLogic struct {
	db         *gorm.DB
	pointLogic *PointLogic
}

// NewChallengeLogic 创建挑战定义业务逻辑
func NewChallengeLogic(db *gorm.DB) *ChallengeLogic {
	return &ChallengeLogic{
		db:         db,
		pointLogic: NewPointLogic(db),
	}
}

// CreateChallenge 创建挑战。durationDays 用于从开始时间推算结束时间。
func (l *ChallengeLogic) CreateChallenge(challenge *model.ChallengeModel, durationDays int) error {
	// 校验挑战数据
	if err := l.validateChallenge(challenge); err != nil {
		return err
	}

	// 计算时间窗口
	if challenge.StartDate == nil {
		now := time.Now()
		challenge.StartDate = &now
	}
	if durationDays > 0 {
		endDate := challenge.StartDate.AddDate(0, 0, durationDays)
		challenge.EndDate = &endDate
	}
	challenge.IsActive = true

	// 创建挑战并给创建者发内容创作奖励
	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(challenge).Error; err != nil {
			return err
		}

		description := fmt.Sprintf("创建挑战「%s」", challenge.Title)
		return l.pointLogic.Award(tx, challenge.CreatorId, CreatorPointsReward,
			model.PointCategoryContentCreation, description, challenge.Id)
	})
}

// GetChallenges 获取挑战列表，支持按运动项目和状态过滤
func (l *ChallengeLogic) GetChallenges(sport string, activeOnly bool, page, pageSize int) ([]model.ChallengeModel, int64, error) {
	var challenges []model.ChallengeModel
	var total int64

	query := l.db.Model(&model.ChallengeModel{})
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&challenges).Error; err != nil {
		return nil, 0, err
	}

	return challenges, total, nil
}

// GetChallenge 获取挑战详情
func (l *ChallengeLogic) GetChallenge(id int64) (*model.ChallengeModel, error) {
	var challenge model.ChallengeModel
	if err := l.db.First(&challenge, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 挑战不存在", ErrNotFound)
		}
		return nil, err
	}
	return &challenge, nil
}

// DeactivateChallenge 下架挑战，不做物理删除
func (l *ChallengeLogic) DeactivateChallenge(id int64, userId int64) error {
	var challenge model.ChallengeModel
	if err := l.db.First(&challenge, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 挑战不存在", ErrNotFound)
		}
		return err
	}

	if challenge.CreatorId != userId {
		return fmt.Errorf("%w: 只有创建者可以下架挑战", ErrForbidden)
	}

	return l.db.Model(&challenge).Update("is_active", false).Error
}

// validateChallenge 校验挑战数据，每个缺失字段单独报错
func (l *ChallengeLogic) validateChallenge(challenge *model.ChallengeModel) error {
	if challenge.Title == "" {
		return fmt.Errorf("%w: 缺少字段 title", ErrBadRequest)
	}
	if challenge.Description == "" {
		return fmt.Errorf("%w: 缺少字段 description", ErrBadRequest)
	}
	switch challenge.ChallengeType {
	case model.ChallengeTypeCumulative, model.ChallengeTypeCollaborative, model.ChallengeTypeCompetitive:
	default:
		return fmt.Errorf("%w: 无效的 challenge_type %q", ErrBadRequest, challenge.ChallengeType)
	}
	if challenge.TargetMetric == "" {
		return fmt.Errorf("%w: 缺少字段 target_metric", ErrBadRequest)
	}
	if challenge.TargetValue <= 0 {
		return fmt.Errorf("%w: target_value 必须大于0", ErrBadRequest)
	}
	if challenge.MinTeamSize < 1 {
		return fmt.Errorf("%w: min_team_size 必须不小于1", ErrBadRequest)
	}
	if challenge.MaxTeamSize < challenge.MinTeamSize {
		return fmt.Errorf("%w: max_team_size 不能小于 min_team_size", ErrBadRequest)
	}
	if challenge.TeamPointsReward < 0 || challenge.IndividualPointsReward < 0 {
		return fmt.Errorf("%w: 奖励积分不能为负数", ErrBadRequest)
	}
	return nil
}
