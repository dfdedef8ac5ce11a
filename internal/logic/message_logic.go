package logic

import (
	"fmt"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// MessageLogic 私信业务逻辑
type MessageLogic struct {
	db                *gorm.DB
	friendshipLogic   *FriendshipLogic
	notificationLogic *NotificationLogic
}

// NewMessageLogic 创建私信业务逻辑
func NewMessageLogic(db *gorm.DB) *MessageLogic {
	return &MessageLogic{
		db:                db,
		friendshipLogic:   NewFriendshipLogic(db),
		notificationLogic: NewNotificationLogic(db),
	}
}

// SendMessage 发送私信，只允许发给已确认的好友
func (l *MessageLogic) SendMessage(senderId, recipientId int64, content string) (*model.MessageModel, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: 消息内容不能为空", ErrBadRequest)
	}
	if senderId == recipientId {
		return nil, fmt.Errorf("%w: 不能给自己发私信", ErrBadRequest)
	}

	friends, err := l.friendshipLogic.AreFriends(senderId, recipientId)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, fmt.Errorf("%w: 只能给好友发私信", ErrForbidden)
	}

	message := model.MessageModel{
		SenderId:    senderId,
		RecipientId: recipientId,
		Content:     content,
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return l.notificationLogic.Create(tx, recipientId,
			model.NotificationTypeNewMessage,
			"新私信",
			"你收到了一条新私信",
			map[string]interface{}{"message_id": message.Id, "sender_id": senderId})
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// GetConversation 获取两人之间的会话，按时间正序
func (l *MessageLogic) GetConversation(userId, otherId int64, page, pageSize int) ([]model.MessageModel, int64, error) {
	var messages []model.MessageModel
	var total int64

	query := l.db.Model(&model.MessageModel{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userId, otherId, otherId, userId)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).
		Limit(pageSize).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkConversationRead 把对方发来的未读消息全部标记已读
func (l *MessageLogic) MarkConversationRead(userId, otherId int64) error {
	return l.db.Model(&model.MessageModel{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", otherId, userId, false).
		Update("is_read", true).Error
}

// GetUnreadCount 获取未读私信数量
func (l *MessageLogic) GetUnreadCount(userId int64) (int64, error) {
	var count int64
	err := l.db.Model(&model.MessageModel{}).
		Where("recipient_id = ? AND is_read = ?", userId, false).
		Count(&count).Error
	return count, err
}
