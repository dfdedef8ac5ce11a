package logic

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// NotificationLogic 通知业务逻辑，通知表兼作投递outbox
type NotificationLogic struct {
	db *gorm.DB
}

// NewNotificationLogic 创建通知业务逻辑
func NewNotificationLogic(db *gorm.DB) *NotificationLogic {
	return &NotificationLogic{db: db}
}

// Create 创建一条待投递通知。data 会序列化为JSON附加数据。
func (n *NotificationLogic) Create(tx *gorm.DB, userId int64, notifType, title, message string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("序列化通知数据失败: %w", err)
		}
		dataJSON = string(b)
	}

	notification := model.NotificationModel{
		UserId:  userId,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    dataJSON,
		Status:  model.NotificationStatusPending,
	}
	return tx.Create(&notification).Error
}

// GetUserNotifications 获取用户通知列表
func (n *NotificationLogic) GetUserNotifications(userId int64, unreadOnly bool, page, pageSize int) ([]model.NotificationModel, int64, error) {
	var notifications []model.NotificationModel
	var total int64

	query := n.db.Model(&model.NotificationModel{}).Where("user_id = ?", userId)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkRead 标记单条通知为已读
func (n *NotificationLogic) MarkRead(userId, notificationId int64) error {
	result := n.db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationId, userId).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 通知不存在", ErrNotFound)
	}
	return nil
}

// MarkAllRead 标记用户全部通知为已读
func (n *NotificationLogic) MarkAllRead(userId int64) error {
	return n.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Update("is_read", true).Error
}

// FetchPending 取出一批待投递通知，投递器按创建顺序处理
func (n *NotificationLogic) FetchPending(limit int) ([]model.NotificationModel, error) {
	var notifications []model.NotificationModel
	if err := n.db.Where("status = ?", model.NotificationStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkDelivered 更新通知投递状态
func (n *NotificationLogic) MarkDelivered(notificationId int64, delivered bool) error {
	status := model.NotificationStatusSent
	if !delivered {
		status = model.NotificationStatusFailed
	}

	result := n.db.Model(&model.NotificationModel{}).
		Where("id = ? AND status = ?", notificationId, model.NotificationStatusPending).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("通知状态已变更")
	}
	return nil
}
