package logic

import (
	"fmt"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// FriendshipLogic 好友关系业务逻辑
type FriendshipLogic struct {
	db                *gorm.DB
	notificationLogic *NotificationLogic
}

// NewFriendshipLogic 创建好友关系业务逻辑
func NewFriendshipLogic(db *gorm.DB) *FriendshipLogic {
	return &FriendshipLogic{
		db:                db,
		notificationLogic: NewNotificationLogic(db),
	}
}

// SendRequest 发起好友请求
func (l *FriendshipLogic) SendRequest(requesterId, addresseeId int64) (*model.FriendshipModel, error) {
	if requesterId == addresseeId {
		return nil, fmt.Errorf("%w: 不能添加自己为好友", ErrBadRequest)
	}

	var addressee model.UserModel
	if err := l.db.First(&addressee, addresseeId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}

	// 两个方向上都不允许重复记录
	var existing int64
	if err := l.db.Model(&model.FriendshipModel{}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			requesterId, addresseeId, addresseeId, requesterId).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: 好友关系已存在", ErrConflict)
	}

	friendship := model.FriendshipModel{
		RequesterId: requesterId,
		AddresseeId: addresseeId,
		Status:      model.FriendshipStatusPending,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&friendship).Error; err != nil {
			return err
		}
		return l.notificationLogic.Create(tx, addresseeId,
			model.NotificationTypeFriendRequest,
			"新的好友请求",
			"你收到了一个好友请求",
			map[string]interface{}{"friendship_id": friendship.Id, "requester_id": requesterId})
	})
	if err != nil {
		return nil, err
	}

	return &friendship, nil
}

// Respond 接受或拒绝好友请求，只有被请求方可以操作
func (l *FriendshipLogic) Respond(friendshipId, userId int64, accept bool) error {
	var friendship model.FriendshipModel
	if err := l.db.First(&friendship, friendshipId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 好友请求不存在", ErrNotFound)
		}
		return err
	}

	if friendship.AddresseeId != userId {
		return fmt.Errorf("%w: 只有被请求方可以处理该请求", ErrForbidden)
	}
	if friendship.Status != model.FriendshipStatusPending {
		return fmt.Errorf("%w: 请求已处理过", ErrInvalidState)
	}

	status := model.FriendshipStatusAccepted
	if !accept {
		status = model.FriendshipStatusDeclined
	}
	return l.db.Model(&friendship).Update("status", status).Error
}

// Remove 删除好友关系，双方都可以操作
func (l *FriendshipLogic) Remove(friendshipId, userId int64) error {
	var friendship model.FriendshipModel
	if err := l.db.First(&friendship, friendshipId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 好友关系不存在", ErrNotFound)
		}
		return err
	}

	if friendship.RequesterId != userId && friendship.AddresseeId != userId {
		return fmt.Errorf("%w: 无权操作该好友关系", ErrForbidden)
	}
	return l.db.Delete(&friendship).Error
}

// GetFriends 获取已确认的好友用户列表
func (l *FriendshipLogic) GetFriends(userId int64) ([]model.UserModel, error) {
	var friends []model.UserModel
	err := l.db.Raw(`
		SELECT u.* FROM users u
		JOIN friendship f ON (
			(f.requester_id = ? AND f.addressee_id = u.id) OR
			(f.addressee_id = ? AND f.requester_id = u.id)
		)
		WHERE f.status = ?
		ORDER BY u.username ASC
	`, userId, userId, model.FriendshipStatusAccepted).Scan(&friends).Error
	if err != nil {
		return nil, err
	}
	return friends, nil
}

// GetPendingRequests 获取待处理的好友请求
func (l *FriendshipLogic) GetPendingRequests(userId int64) ([]model.FriendshipModel, error) {
	var requests []model.FriendshipModel
	if err := l.db.Where("addressee_id = ? AND status = ?", userId, model.FriendshipStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// AreFriends 判断两个用户是否为已确认好友
func (l *FriendshipLogic) AreFriends(userA, userB int64) (bool, error) {
	var count int64
	err := l.db.Model(&model.FriendshipModel{}).
		Where("((requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)) AND status = ?",
			userA, userB, userB, userA, model.FriendshipStatusAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
