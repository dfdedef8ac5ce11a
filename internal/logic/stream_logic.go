package logic

import (
	"fmt"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// StreamLogic 直播业务逻辑，状态只能沿 scheduled → live → ended 推进
type StreamLogic struct {
	db *gorm.DB
}

// NewStreamLogic 创建直播业务逻辑
func NewStreamLogic(db *gorm.DB) *StreamLogic {
	return &StreamLogic{db: db}
}

// ScheduleStream 预约直播
func (l *StreamLogic) ScheduleStream(userId int64, title, sport string, scheduledAt time.Time) (*model.LiveStreamModel, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: 缺少字段 title", ErrBadRequest)
	}

	stream := model.LiveStreamModel{
		UserId:      userId,
		Title:       title,
		Sport:       sport,
		Status:      model.StreamStatusScheduled,
		ScheduledAt: &scheduledAt,
	}
	if err := l.db.Create(&stream).Error; err != nil {
		return nil, err
	}
	return &stream, nil
}

// StartStream 开播，只能由主播本人从 scheduled 状态发起
func (l *StreamLogic) StartStream(streamId, userId int64, playbackURL string) error {
	stream, err := l.getOwnedStream(streamId, userId)
	if err != nil {
		return err
	}

	if stream.Status != model.StreamStatusScheduled {
		return fmt.Errorf("%w: 直播当前状态为%s，无法开播", ErrInvalidState, stream.Status)
	}

	now := time.Now()
	return l.db.Model(stream).Updates(map[string]interface{}{
		"status":       model.StreamStatusLive,
		"started_at":   now,
		"playback_url": playbackURL,
	}).Error
}

// EndStream 结束直播
func (l *StreamLogic) EndStream(streamId, userId int64) error {
	stream, err := l.getOwnedStream(streamId, userId)
	if err != nil {
		return err
	}

	if stream.Status != model.StreamStatusLive {
		return fmt.Errorf("%w: 直播当前状态为%s，无法结束", ErrInvalidState, stream.Status)
	}

	now := time.Now()
	return l.db.Model(stream).Updates(map[string]interface{}{
		"status":   model.StreamStatusEnded,
		"ended_at": now,
	}).Error
}

// AddViewer 观众进入直播间时累加观看人数
func (l *StreamLogic) AddViewer(streamId int64) error {
	result := l.db.Model(&model.LiveStreamModel{}).
		Where("id = ? AND status = ?", streamId, model.StreamStatusLive).
		Update("viewer_count", gorm.Expr("viewer_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 直播不存在或未在进行中", ErrInvalidState)
	}
	return nil
}

// GetLiveStreams 获取正在进行的直播列表
func (l *StreamLogic) GetLiveStreams(sport string, page, pageSize int) ([]model.LiveStreamModel, int64, error) {
	var streams []model.LiveStreamModel
	var total int64

	query := l.db.Model(&model.LiveStreamModel{}).Where("status = ?", model.StreamStatusLive)
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("viewer_count DESC").
		Find(&streams).Error; err != nil {
		return nil, 0, err
	}

	return streams, total, nil
}

// getOwnedStream 获取直播并校验归属
func (l *StreamLogic) getOwnedStream(streamId, userId int64) (*model.LiveStreamModel, error) {
	var stream model.LiveStreamModel
	if err := l.db.First(&stream, streamId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 直播不存在", ErrNotFound)
		}
		return nil, err
	}
	if stream.UserId != userId {
		return nil, fmt.Errorf("%w: 只有主播本人可以操作", ErrForbidden)
	}
	return &stream, nil
}
