package logic

import (
	"fmt"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"gorm.io/gorm"
)

// TeamLogic 队伍业务逻辑
type TeamLogic struct {
	db *gorm.DB
}

// NewTeamLogic 创建队伍业务逻辑
func NewTeamLogic(db *gorm.DB) *TeamLogic {
	return &TeamLogic{db: db}
}

// CreateTeam 创建队伍，创建者自动成为队长
func (l *TeamLogic) CreateTeam(name, sport, description string, captainId int64) (*model.TeamModel, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: 缺少字段 name", ErrBadRequest)
	}

	team := model.TeamModel{
		Name:        name,
		Sport:       sport,
		Description: description,
		CaptainId:   captainId,
	}

	err := l.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		captain := model.TeamMemberModel{
			TeamId:   team.Id,
			UserId:   captainId,
			Role:     model.MemberRoleCaptain,
			IsActive: true,
			JoinedAt: time.Now(),
		}
		return tx.Create(&captain).Error
	})
	if err != nil {
		return nil, err
	}

	return &team, nil
}

// JoinTeam 加入队伍
func (l *TeamLogic) JoinTeam(teamId, userId int64) (*model.TeamMemberModel, error) {
	var team model.TeamModel
	if err := l.db.First(&team, teamId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 队伍不存在", ErrNotFound)
		}
		return nil, err
	}

	var existing int64
	if err := l.db.Model(&model.TeamMemberModel{}).
		Where("team_id = ? AND user_id = ?", teamId, userId).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, fmt.Errorf("%w: 已经是队伍成员", ErrConflict)
	}

	member := model.TeamMemberModel{
		TeamId:   teamId,
		UserId:   userId,
		Role:     model.MemberRoleMember,
		IsActive: true,
		JoinedAt: time.Now(),
	}
	if err := l.db.Create(&member).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

// LeaveTeam 退出队伍。队长不能退出，只能先转让。
func (l *TeamLogic) LeaveTeam(teamId, userId int64) error {
	var member model.TeamMemberModel
	err := l.db.Where("team_id = ? AND user_id = ? AND is_active = ?", teamId, userId, true).
		First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 不是该队伍的成员", ErrNotFound)
		}
		return err
	}

	if member.Role == model.MemberRoleCaptain {
		return fmt.Errorf("%w: 队长不能退出队伍", ErrInvalidState)
	}

	// 成员记录保留，置为不在编
	return l.db.Model(&member).Update("is_active", false).Error
}

// SetMemberRole 队长设置成员角色
func (l *TeamLogic) SetMemberRole(teamId, captainId, memberId int64, role model.MemberRole) error {
	if role != model.MemberRoleCoCaptain && role != model.MemberRoleMember {
		return fmt.Errorf("%w: 无效的角色", ErrBadRequest)
	}

	var team model.TeamModel
	if err := l.db.First(&team, teamId).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: 队伍不存在", ErrNotFound)
		}
		return err
	}
	if team.CaptainId != captainId {
		return fmt.Errorf("%w: 只有队长可以调整角色", ErrForbidden)
	}

	result := l.db.Model(&model.TeamMemberModel{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamId, memberId, true).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: 成员不存在", ErrNotFound)
	}
	return nil
}

// GetTeam 获取队伍详情
func (l *TeamLogic) GetTeam(id int64) (*model.TeamModel, error) {
	var team model.TeamModel
	if err := l.db.First(&team, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: 队伍不存在", ErrNotFound)
		}
		return nil, err
	}
	return &team, nil
}

// GetTeamMembers 获取队伍在编成员列表
func (l *TeamLogic) GetTeamMembers(teamId int64) ([]model.TeamMemberModel, error) {
	var members []model.TeamMemberModel
	if err := l.db.Where("team_id = ? AND is_active = ?", teamId, true).
		Order("joined_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// GetUserTeams 获取用户所在的队伍
func (l *TeamLogic) GetUserTeams(userId int64) ([]model.TeamModel, error) {
	var teams []model.TeamModel
	if err := l.db.Joins("JOIN team_member ON team_member.team_id = team.id").
		Where("team_member.user_id = ? AND team_member.is_active = ?", userId, true).
		Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}
