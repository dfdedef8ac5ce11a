package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StreamHandler 直播处理器
type StreamHandler struct {
	streamLogic *logic.StreamLogic
}

// NewStreamHandler 创建直播处理器
func NewStreamHandler(db *gorm.DB) *StreamHandler {
	return &StreamHandler{
		streamLogic: logic.NewStreamLogic(db),
	}
}

// Schedule 预约直播
func (h *StreamHandler) Schedule(c *gin.Context) {
	var req struct {
		Title       string    `json:"title" binding:"required"`
		Sport       string    `json:"sport"`
		ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 title 或 scheduled_at")
		return
	}

	stream, err := h.streamLogic.ScheduleStream(middleware.CurrentUserID(c), req.Title, req.Sport, req.ScheduledAt)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "直播预约成功", gin.H{"stream": stream})
}

// Start 开始直播
func (h *StreamHandler) Start(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的直播ID")
		return
	}

	var req struct {
		PlaybackURL string `json:"playback_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求体")
		return
	}

	if err := h.streamLogic.StartStream(id, middleware.CurrentUserID(c), req.PlaybackURL); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "直播已开始", nil)
}

// End 结束直播
func (h *StreamHandler) End(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的直播ID")
		return
	}

	if err := h.streamLogic.EndStream(id, middleware.CurrentUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "直播已结束", nil)
}

// Watch 进入直播间，累加观看人数
func (h *StreamHandler) Watch(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的直播ID")
		return
	}

	if err := h.streamLogic.AddViewer(id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", nil)
}

// ListLive 获取正在直播的列表
func (h *StreamHandler) ListLive(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	streams, total, err := h.streamLogic.GetLiveStreams(c.Query("sport"), page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"streams":    streams,
		"pagination": NewPagination(page, pageSize, total),
	})
}
