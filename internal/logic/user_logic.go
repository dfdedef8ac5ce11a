package logic

import (
	"fmt"
	"strings"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserLogic 用户与个人资料业务逻辑
type UserLogic struct {
	db *gorm.DB
}

// NewUserLogic 创建用户业务逻辑
func NewUserLogic(db *gorm.DB) *UserLogic {
	return &UserLogic{db: db}
}

// Register 注册新用户
func (l *UserLogic) Register(username, email, password string) (*model.UserModel, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 || len(username) > 50 {
		return nil, fmt.Errorf("%w: 用户名长度必须在3-50之间", ErrBadRequest)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: 密码长度不能小于8", ErrBadRequest)
	}

	var existing int64
	if err := l.db.Model(&model.UserModel{}).
		Where("username = ? OR email = ?", username, email).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: 用户名或邮箱已被注册", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("密码加密失败: %w", err)
	}

	user := model.UserModel{
		Uuid:         uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  username,
		IsActive:     true,
	}
	if err := l.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate 校验用户名和密码
func (l *UserLogic) Authenticate(username, password string) (*model.UserModel, error) {
	var user model.UserModel
	if err := l.db.Where("username = ?", username).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 用户名或密码错误", ErrForbidden)
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: 账号已停用", ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: 用户名或密码错误", ErrForbidden)
	}

	return &user, nil
}

// GetUser 获取用户详情
func (l *UserLogic) GetUser(id int64) (*model.UserModel, error) {
	var user model.UserModel
	if err := l.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 用户不存在", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile 更新个人资料，只允许更新指定字段
func (l *UserLogic) UpdateProfile(userId int64, updates map[string]interface{}) error {
	allowedFields := map[string]bool{
		"display_name": true,
		"sport":        true,
		"position":     true,
		"bio":          true,
		"avatar_url":   true,
		"birth_year":   true,
	}
	for key := range updates {
		if !allowedFields[key] {
			delete(updates, key)
		}
	}
	if len(updates) == 0 {
		return fmt.Errorf("%w: 没有要更新的字段", ErrBadRequest)
	}

	result := l.db.Model(&model.UserModel{}).Where("id = ?", userId).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 用户不存在", ErrNotFound)
	}
	return nil
}

// UpsertStatRecord 写入或更新运动数据记录，按 用户+项目+指标 去重
func (l *UserLogic) UpsertStatRecord(userId int64, sport, statKey string, statValue float64, season string) error {
	if sport == "" || statKey == "" {
		return fmt.Errorf("%w: sport 和 stat_key 不能为空", ErrBadRequest)
	}

	record := model.StatRecordModel{
		UserId:    userId,
		Sport:     sport,
		StatKey:   statKey,
		StatValue: statValue,
		Season:    season,
	}
	return l.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "sport"}, {Name: "stat_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"stat_value", "season"}),
	}).Create(&record).Error
}

// GetStatRecords 获取用户的运动数据
func (l *UserLogic) GetStatRecords(userId int64, sport string) ([]model.StatRecordModel, error) {
	var records []model.StatRecordModel
	query := l.db.Where("user_id = ?", userId)
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if err := query.Order("stat_key ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
