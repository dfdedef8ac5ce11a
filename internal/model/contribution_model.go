package model

import (
	"time"
)

// ContributionModel 个人贡献记录，只追加、不更新、不删除
type ContributionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ParticipationId   int64   `json:"participation_id" gorm:"not null;index"`
	UserId            int64   `json:"user_id" gorm:"not null;index"`
	ContributionValue float64 `json:"contribution_value" gorm:"not null"`
	ContributionType  string  `json:"contribution_type" gorm:"size:50"` // 默认取挑战的 target_metric
	Verified          bool    `json:"verified" gorm:"default:true"`
}

// TableName 自定义表名
func (ContributionModel) TableName() string {
	return "challenge_contribution"
}
