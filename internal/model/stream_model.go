package model

import (
	"time"
)

// StreamStatus 直播状态
type StreamStatus string

const (
	StreamStatusScheduled StreamStatus = "scheduled" // 已预约
	StreamStatusLive      StreamStatus = "live"      // 直播中
	StreamStatusEnded     StreamStatus = "ended"     // 已结束
)

// LiveStreamModel 直播场次
type LiveStreamModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserId      int64        `json:"user_id" gorm:"not null;index"`
	Title       string       `json:"title" gorm:"not null"`
	Sport       string       `json:"sport" gorm:"size:50"`
	Status      StreamStatus `json:"status" gorm:"size:20;default:'scheduled'"`
	PlaybackURL string       `json:"playback_url"`
	ViewerCount int64        `json:"viewer_count" gorm:"default:0"`

	ScheduledAt *time.Time `json:"scheduled_at"`
	StartedAt   *time.Time `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at"`
}

// TableName 自定义表名
func (LiveStreamModel) TableName() string {
	return "live_stream"
}
