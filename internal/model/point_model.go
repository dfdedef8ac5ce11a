package model

import (
	"time"
)

// 积分类别
const (
	PointCategoryChallengeReward = "challenge_reward" // 挑战完成奖励
	PointCategoryTeamReward      = "team_reward"      // 团队奖励
	PointCategoryContentCreation = "content_creation" // 创建内容奖励
)

// PointTransactionModel 积分流水，只追加
type PointTransactionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId      int64  `json:"user_id" gorm:"not null;index"`
	Amount      int64  `json:"amount" gorm:"not null"`
	Category    string `json:"category" gorm:"size:50;not null"`
	Description string `json:"description"`
	ReferenceId int64  `json:"reference_id"` // 关联的挑战/参赛记录ID
}

// TableName 自定义表名
func (PointTransactionModel) TableName() string {
	return "point_transaction"
}
