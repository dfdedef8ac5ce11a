package model

import (
	"time"
)

// ParticipationStatus 参赛记录状态，只会单向推进
type ParticipationStatus string

const (
	ParticipationStatusRegistered ParticipationStatus = "registered" // 已报名
	ParticipationStatusActive     ParticipationStatus = "active"     // 进行中
	ParticipationStatusCompleted  ParticipationStatus = "completed"  // 已完成
)

// ParticipationModel 队伍参赛记录，一支队伍对一个挑战至多一条
type ParticipationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ChallengeId int64 `json:"challenge_id" gorm:"not null;uniqueIndex:idx_challenge_team"`
	TeamId      int64 `json:"team_id" gorm:"not null;uniqueIndex:idx_challenge_team"`

	Status ParticipationStatus `json:"status" gorm:"size:20;default:'registered'"`

	// current_progress 是由贡献账本重算出的缓存值，账本才是事实来源
	CurrentProgress      float64    `json:"current_progress" gorm:"default:0"`
	CompletionPercentage float64    `json:"completion_percentage" gorm:"default:0"`
	CompletedAt          *time.Time `json:"completed_at"`
}

// TableName 自定义表名
func (ParticipationModel) TableName() string {
	return "challenge_participation"
}
