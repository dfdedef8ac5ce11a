package model

import (
	"time"
)

// TeamModel 队伍模型
type TeamModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `json:"name" gorm:"size:100;not null"`
	Sport       string `json:"sport" gorm:"size:50;index"`
	Description string `json:"description" gorm:"type:text"`
	CaptainId   int64  `json:"captain_id" gorm:"not null"`
	LogoURL     string `json:"logo_url"`
}

// TableName 自定义表名
func (TeamModel) TableName() string {
	return "team"
}

// MemberRole 队伍成员角色
type MemberRole string

const (
	MemberRoleCaptain   MemberRole = "captain"    // 队长
	MemberRoleCoCaptain MemberRole = "co_captain" // 副队长
	MemberRoleMember    MemberRole = "member"     // 队员
)

// TeamMemberModel 队伍成员模型
type TeamMemberModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TeamId   int64      `json:"team_id" gorm:"not null;uniqueIndex:idx_team_user"`
	UserId   int64      `json:"user_id" gorm:"not null;uniqueIndex:idx_team_user"`
	Role     MemberRole `json:"role" gorm:"size:20;default:'member'"`
	IsActive bool       `json:"is_active" gorm:"default:true"`
	JoinedAt time.Time  `json:"joined_at"`
}

// TableName 自定义表名
func (TeamMemberModel) TableName() string {
	return "team_member"
}
