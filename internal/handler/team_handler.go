package handler

import (
	"net/http"
	"strconv"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TeamHandler 队伍处理器
type TeamHandler struct {
	teamLogic *logic.TeamLogic
}

// NewTeamHandler 创建队伍处理器
func NewTeamHandler(db *gorm.DB) *TeamHandler {
	return &TeamHandler{
		teamLogic: logic.NewTeamLogic(db),
	}
}

// Create 创建队伍
func (h *TeamHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Sport       string `json:"sport"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 name")
		return
	}

	team, err := h.teamLogic.CreateTeam(req.Name, req.Sport, req.Description, middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "队伍创建成功", gin.H{"team": team})
}

// Get 获取队伍详情和成员
func (h *TeamHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的队伍ID")
		return
	}

	team, err := h.teamLogic.GetTeam(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	members, err := h.teamLogic.GetTeamMembers(id)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"team":    team,
		"members": members,
	})
}

// Join 加入队伍
func (h *TeamHandler) Join(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的队伍ID")
		return
	}

	member, err := h.teamLogic.JoinTeam(id, middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "加入队伍成功", gin.H{"member": member})
}

// Leave 退出队伍
func (h *TeamHandler) Leave(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的队伍ID")
		return
	}

	if err := h.teamLogic.LeaveTeam(id, middleware.CurrentUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已退出队伍", nil)
}

// SetRole 队长设置成员角色
func (h *TeamHandler) SetRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的队伍ID")
		return
	}

	var req struct {
		UserId int64  `json:"user_id" binding:"required"`
		Role   string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 user_id 或 role")
		return
	}

	err = h.teamLogic.SetMemberRole(id, middleware.CurrentUserID(c), req.UserId, model.MemberRole(req.Role))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "角色已更新", nil)
}

// MyTeams 获取当前用户所在的队伍
func (h *TeamHandler) MyTeams(c *gin.Context) {
	teams, err := h.teamLogic.GetUserTeams(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"teams": teams})
}
