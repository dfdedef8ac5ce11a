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

// HighlightHandler 精彩集锦处理器
type HighlightHandler struct {
	highlightLogic *logic.HighlightLogic
}

// NewHighlightHandler 创建精彩集锦处理器
func NewHighlightHandler(db *gorm.DB) *HighlightHandler {
	return &HighlightHandler{
		highlightLogic: logic.NewHighlightLogic(db),
	}
}

// Create 上传集锦元数据
func (h *HighlightHandler) Create(c *gin.Context) {
	var req struct {
		Title        string `json:"title" binding:"required"`
		Description  string `json:"description"`
		Sport        string `json:"sport"`
		VideoURL     string `json:"video_url" binding:"required"`
		ThumbnailURL string `json:"thumbnail_url"`
		Duration     int    `json:"duration"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 title 或 video_url")
		return
	}

	highlight := model.HighlightModel{
		UserId:       middleware.CurrentUserID(c),
		Title:        req.Title,
		Description:  req.Description,
		Sport:        req.Sport,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		Duration:     req.Duration,
	}
	if err := h.highlightLogic.CreateHighlight(&highlight); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "集锦创建成功", gin.H{"highlight": highlight})
}

// Get 获取集锦详情，同时累加浏览量
func (h *HighlightHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的集锦ID")
		return
	}

	highlight, err := h.highlightLogic.GetHighlight(id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"highlight": highlight})
}

// ListByUser 获取指定用户的集锦列表
func (h *HighlightHandler) ListByUser(c *gin.Context) {
	userId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	highlights, total, err := h.highlightLogic.GetUserHighlights(userId, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"highlights": highlights,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// Update 更新集锦，仅限作者
func (h *HighlightHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的集锦ID")
		return
	}

	var updateData struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		ThumbnailURL *string `json:"thumbnail_url"`
	}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求体")
		return
	}

	updates := make(map[string]interface{})
	if updateData.Title != nil {
		updates["title"] = *updateData.Title
	}
	if updateData.Description != nil {
		updates["description"] = *updateData.Description
	}
	if updateData.ThumbnailURL != nil {
		updates["thumbnail_url"] = *updateData.ThumbnailURL
	}

	if err := h.highlightLogic.UpdateHighlight(id, middleware.CurrentUserID(c), updates); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "集锦更新成功", nil)
}

// Delete 删除集锦，仅限作者
func (h *HighlightHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的集锦ID")
		return
	}

	if err := h.highlightLogic.DeleteHighlight(id, middleware.CurrentUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "集锦已删除", nil)
}
