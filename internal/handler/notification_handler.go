package handler

import (
	"net/http"
	"strconv"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NotificationHandler 通知处理器
type NotificationHandler struct {
	notificationLogic *logic.NotificationLogic
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{
		notificationLogic: logic.NewNotificationLogic(db),
	}
}

// List 获取当前用户的通知列表
func (h *NotificationHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	unreadOnly := c.Query("unread_only") == "true"

	notifications, total, err := h.notificationLogic.GetUserNotifications(
		middleware.CurrentUserID(c), unreadOnly, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{
		"notifications": notifications,
		"pagination":    NewPagination(page, pageSize, total),
	})
}

// MarkRead 标记单条通知为已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的通知ID")
		return
	}

	if err := h.notificationLogic.MarkRead(middleware.CurrentUserID(c), id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "通知已标记为已读", nil)
}

// MarkAllRead 标记全部通知为已读
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationLogic.MarkAllRead(middleware.CurrentUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "全部通知已标记为已读", nil)
}
