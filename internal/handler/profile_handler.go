package handler

import (
	"net/http"
	"strconv"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileHandler 个人资料处理器
type ProfileHandler struct {
	userLogic  *logic.UserLogic
	pointLogic *logic.PointLogic
}

// NewProfileHandler 创建个人资料处理器
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{
		userLogic:  logic.NewUserLogic(db),
		pointLogic: logic.NewPointLogic(db),
	}
}

// GetMe 获取当前用户资料
func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, err := h.userLogic.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"user": user})
}

// GetUser 获取指定用户的公开资料
func (h *ProfileHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	user, err := h.userLogic.GetUser(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"user": user})
}

// UpdateMe 更新当前用户资料
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var updateData struct {
		DisplayName *string `json:"display_name"`
		Sport       *string `json:"sport"`
		Position    *string `json:"position"`
		Bio         *string `json:"bio"`
		AvatarURL   *string `json:"avatar_url"`
		BirthYear   *int    `json:"birth_year"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求体")
		return
	}

	updates := make(map[string]interface{})
	if updateData.DisplayName != nil {
		updates["display_name"] = *updateData.DisplayName
	}
	if updateData.Sport != nil {
		updates["sport"] = *updateData.Sport
	}
	if updateData.Position != nil {
		updates["position"] = *updateData.Position
	}
	if updateData.Bio != nil {
		updates["bio"] = *updateData.Bio
	}
	if updateData.AvatarURL != nil {
		updates["avatar_url"] = *updateData.AvatarURL
	}
	if updateData.BirthYear != nil {
		updates["birth_year"] = *updateData.BirthYear
	}

	if err := h.userLogic.UpdateProfile(middleware.CurrentUserID(c), updates); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "资料更新成功", nil)
}

// UpsertStat 写入运动数据记录
func (h *ProfileHandler) UpsertStat(c *gin.Context) {
	var req struct {
		Sport     string  `json:"sport" binding:"required"`
		StatKey   string  `json:"stat_key" binding:"required"`
		StatValue float64 `json:"stat_value"`
		Season    string  `json:"season"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 sport 或 stat_key")
		return
	}

	userId := middleware.CurrentUserID(c)
	if err := h.userLogic.UpsertStatRecord(userId, req.Sport, req.StatKey, req.StatValue, req.Season); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "运动数据已更新", nil)
}

// GetStats 获取指定用户的运动数据
func (h *ProfileHandler) GetStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	records, err := h.userLogic.GetStatRecords(id, c.Query("sport"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"stats": records})
}

// GetPointHistory 获取当前用户的积分流水
func (h *ProfileHandler) GetPointHistory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	transactions, total, err := h.pointLogic.GetUserTransactions(middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"transactions": transactions,
		"pagination":   NewPagination(page, pageSize, total),
	})
}
