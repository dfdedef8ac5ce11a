package logic

import (
	"fmt"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// HighlightLogic 精彩集锦业务逻辑，只管理元数据，视频文件在外部对象存储
type HighlightLogic struct {
	db *gorm.DB
}

// NewHighlightLogic 创建精彩集锦业务逻辑
func NewHighlightLogic(db *gorm.DB) *HighlightLogic {
	return &HighlightLogic{db: db}
}

// CreateHighlight 创建集锦
func (l *HighlightLogic) CreateHighlight(highlight *model.HighlightModel) error {
	if highlight.Title == "" {
		return fmt.Errorf("%w: 缺少字段 title", ErrBadRequest)
	}
	if highlight.VideoURL == "" {
		return fmt.Errorf("%w: 缺少字段 video_url", ErrBadRequest)
	}
	return l.db.Create(highlight).Error
}

// GetHighlight 获取集锦详情并累加播放次数
func (l *HighlightLogic) GetHighlight(id int64) (*model.HighlightModel, error) {
	var highlight model.HighlightModel
	if err := l.db.First(&highlight, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 集锦不存在", ErrNotFound)
		}
		return nil, err
	}

	l.db.Model(&highlight).Update("views", gorm.Expr("views + 1"))
	highlight.Views++

	return &highlight, nil
}

// GetUserHighlights 获取用户的集锦列表
func (l *HighlightLogic) GetUserHighlights(userId int64, page, pageSize int) ([]model.HighlightModel, int64, error) {
	var highlights []model.HighlightModel
	var total int64

	query := l.db.Model(&model.HighlightModel{}).Where("user_id = ? AND is_public = ?", userId, true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&highlights).Error; err != nil {
		return nil, 0, err
	}

	return highlights, total, nil
}

// UpdateHighlight 更新集锦元数据，只有上传者本人可以操作
func (l *HighlightLogic) UpdateHighlight(id, userId int64, updates map[string]interface{}) error {
	var highlight model.HighlightModel
	if err := l.db.First(&highlight, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 集锦不存在", ErrNotFound)
		}
		return err
	}
	if highlight.UserId != userId {
		return fmt.Errorf("%w: 只有上传者可以修改集锦", ErrForbidden)
	}

	allowedFields := map[string]bool{
		"title":         true,
		"description":   true,
		"sport":         true,
		"thumbnail_url": true,
		"is_public":     true,
	}
	for key := range updates {
		if !allowedFields[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: 没有要更新的字段", ErrBadRequest)
	}

	return l.db.Model(&highlight).Updates(updates).Error
}

// DeleteHighlight 删除集锦
func (l *HighlightLogic) DeleteHighlight(id, userId int64) error {
	var highlight model.HighlightModel
	if err := l.db.First(&highlight, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 集锦不存在", ErrNotFound)
		}
		return err
	}
	if highlight.UserId != userId {
		return fmt.Errorf("%w: 只有上传者可以删除集锦", ErrForbidden)
	}
	return l.db.Delete(&highlight).Error
}
