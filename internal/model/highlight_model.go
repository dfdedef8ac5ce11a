package model

import (
	"time"
)

// HighlightModel 精彩集锦元数据，视频文件本身存放在外部对象存储
type HighlightModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId       int64  `json:"user_id" gorm:"not null;index"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`
	Sport        string `json:"sport" gorm:"size:50;index"`
	VideoURL     string `json:"video_url" gorm:"not null"`
	ThumbnailURL string `json:"thumbnail_url"`
	Duration     int    `json:"duration"` // 时长（秒）
	Views        int64  `json:"views" gorm:"default:0"`
	IsPublic     bool   `json:"is_public" gorm:"default:true"`
}

// TableName 自定义表名
func (HighlightModel) TableName() string {
	return "highlight"
}
