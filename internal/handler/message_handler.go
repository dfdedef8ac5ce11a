package handler

import (
	"net/http"
	"strconv"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MessageHandler 私信处理器
type MessageHandler struct {
	messageLogic *logic.MessageLogic
}

// NewMessageHandler 创建私信处理器
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{
		messageLogic: logic.NewMessageLogic(db),
	}
}

// Send 发送私信，仅限好友
func (h *MessageHandler) Send(c *gin.Context) {
	var req struct {
		RecipientId int64  `json:"recipient_id" binding:"required"`
		Content     string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 recipient_id 或 content")
		return
	}

	message, err := h.messageLogic.SendMessage(middleware.CurrentUserID(c), req.RecipientId, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "私信已发送", gin.H{"message": message})
}

// Conversation 获取与指定用户的会话记录
func (h *MessageHandler) Conversation(c *gin.Context) {
	otherId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	userId := middleware.CurrentUserID(c)
	messages, total, err := h.messageLogic.GetConversation(userId, otherId, page, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := h.messageLogic.MarkConversationRead(userId, otherId); err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "", gin.H{
		"messages":   messages,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// UnreadCount 获取未读私信数量
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageLogic.GetUnreadCount(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"unread_count": count})
}
