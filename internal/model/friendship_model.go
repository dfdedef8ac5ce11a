package model

import (
	"time"
)

// FriendshipStatus 好友关系状态
type FriendshipStatus string

const (
	FriendshipStatusPending  FriendshipStatus = "pending"  // 等待确认
	FriendshipStatusAccepted FriendshipStatus = "accepted" // 已接受
	FriendshipStatusDeclined FriendshipStatus = "declined" // 已拒绝
)

// FriendshipModel 好友关系，按发起方向存储一条记录
type FriendshipModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RequesterId int64            `json:"requester_id" gorm:"not null;uniqueIndex:idx_requester_addressee"`
	AddresseeId int64            `json:"addressee_id" gorm:"not null;uniqueIndex:idx_requester_addressee"`
	Status      FriendshipStatus `json:"status" gorm:"size:20;default:'pending'"`
}

// TableName 自定义表名
func (FriendshipModel) TableName() string {
	return "friendship"
}
