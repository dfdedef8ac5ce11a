package model

import (
	"time"
)

// MessageModel 私信
type MessageModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SenderId    int64  `json:"sender_id" gorm:"not null;index"`
	RecipientId int64  `json:"recipient_id" gorm:"not null;index"`
	Content     string `json:"content" gorm:"type:text;not null"`
	IsRead      bool   `json:"is_read" gorm:"default:false"`
}

// TableName 自定义表名
func (MessageModel) TableName() string {
	return "message"
}
