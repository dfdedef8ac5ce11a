package model

import (
	"time"
)

// UserModel 运动员用户模型
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 账号信息
	Uuid         string `json:"uuid" gorm:"uniqueIndex;size:36"`
	Username     string `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:100"`
	PasswordHash string `json:"-" gorm:"not null"`

	// 个人资料
	DisplayName string `json:"display_name" gorm:"size:100"`
	Sport       string `json:"sport" gorm:"size:50;index"`
	Position    string `json:"position" gorm:"size:50"`
	Bio         string `json:"bio" gorm:"type:text"`
	AvatarURL   string `json:"avatar_url"`
	BirthYear   int    `json:"birth_year"`

	// 积分与状态
	TotalPoints int64 `json:"total_points" gorm:"default:0;index"`
	IsActive    bool  `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}

// StatRecordModel 运动数据记录
type StatRecordModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId    int64   `json:"user_id" gorm:"not null;uniqueIndex:idx_user_sport_key"`
	Sport     string  `json:"sport" gorm:"size:50;not null;uniqueIndex:idx_user_sport_key"`
	StatKey   string  `json:"stat_key" gorm:"size:50;not null;uniqueIndex:idx_user_sport_key"` // 例如 goals, assists, sprint_time
	StatValue float64 `json:"stat_value"`
	Season    string  `json:"season" gorm:"size:20"`
}

// TableName 自定义表名
func (StatRecordModel) TableName() string {
	return "stat_record"
}
