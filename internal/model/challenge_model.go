package model

import (
	"time"
)

// ChallengeType 挑战类型，决定进度的聚合方式
type ChallengeType string

const (
	ChallengeTypeCumulative    ChallengeType = "cumulative"    // 累计型：所有贡献求和
	ChallengeTypeCollaborative ChallengeType = "collaborative" // 协作型：所有贡献取平均
	ChallengeTypeCompetitive   ChallengeType = "competitive"   // 竞争型：所有贡献取最大值
)

// ChallengeModel 团队挑战模型
type ChallengeModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Sport       string `json:"sport" gorm:"size:50;index"`
	CreatorId   int64  `json:"creator_id" gorm:"not null"`

	// 挑战规则
	ChallengeType ChallengeType `json:"challenge_type" gorm:"size:20;not null"`
	TargetMetric  string        `json:"target_metric" gorm:"size:50;not null"` // 目标指标，例如 total_goals
	TargetValue   float64       `json:"target_value" gorm:"not null"`
	MinTeamSize   int           `json:"min_team_size" gorm:"default:1"`
	MaxTeamSize   int           `json:"max_team_size" gorm:"default:10"`

	// 奖励
	TeamPointsReward       int64 `json:"team_points_reward" gorm:"default:0"`
	IndividualPointsReward int64 `json:"individual_points_reward" gorm:"default:0"`

	// 时间窗口
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// 状态，不做物理删除，只通过 is_active 下架
	IsActive bool `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (ChallengeModel) TableName() string {
	return "team_challenge"
}
