package model

import (
	"time"
)

// NotificationStatus 通知投递状态
type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "pending" // 待投递
	NotificationStatusSent    NotificationStatus = "sent"    // 已投递
	NotificationStatusFailed  NotificationStatus = "failed"  // 投递失败
)

// 通知类型
const (
	NotificationTypeChallengeRegistered = "challenge_registered" // 队伍报名成功
	NotificationTypeChallengeCompleted  = "challenge_completed"  // 挑战完成
	NotificationTypeFriendRequest       = "friend_request"       // 好友请求
	NotificationTypeNewMessage          = "new_message"          // 新私信
)

// NotificationModel 通知记录，兼作投递 outbox
type NotificationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId  int64  `json:"user_id" gorm:"not null;index"`
	Type    string `json:"type" gorm:"size:50;not null"`
	Title   string `json:"title" gorm:"not null"`
	Message string `json:"message" gorm:"type:text"`
	Data    string `json:"data" gorm:"type:text"` // 附加数据，JSON字符串

	IsRead bool               `json:"is_read" gorm:"default:false"`
	Status NotificationStatus `json:"status" gorm:"size:20;default:'pending';index"`
}

// TableName 自定义表名
func (NotificationModel) TableName() string {
	return "notification"
}
