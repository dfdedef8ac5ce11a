package logic

import (
	"fmt"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// PointLogic 积分账本业务逻辑
type PointLogic struct {
	db *gorm.DB
}

// NewPointLogic 创建积分账本业务逻辑
func NewPointLogic(db *gorm.DB) *PointLogic {
	return &PointLogic{db: db}
}

// Award 追加一条积分流水并累加用户总分。
// tx 传调用方的事务句柄，发奖和触发它的状态变更在同一事务内提交。
func (p *PointLogic) Award(tx *gorm.DB, userId int64, amount int64, category, description string, referenceId int64) error {
	if amount == 0 {
		return nil
	}

	record := model.PointTransactionModel{
		UserId:      userId,
		Amount:      amount,
		Category:    category,
		Description: description,
		ReferenceId: referenceId,
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("创建积分流水失败: %w", err)
	}

	if err := tx.Model(&model.UserModel{}).
		Where("id = ?", userId).
		Update("total_points", gorm.Expr("total_points + ?", amount)).Error; err != nil {
		return fmt.Errorf("更新用户总分失败: %w", err)
	}

	return nil
}

// GetUserTransactions 获取用户积分流水
func (p *PointLogic) GetUserTransactions(userId int64, page, pageSize int) ([]model.PointTransactionModel, int64, error) {
	var transactions []model.PointTransactionModel
	var total int64

	if err := p.db.Model(&model.PointTransactionModel{}).Where("user_id = ?", userId).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := p.db.Where("user_id = ?", userId).
		Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}
