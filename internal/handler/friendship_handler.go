package handler

import (
	"net/http"
	"strconv"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FriendshipHandler 好友关系处理器
type FriendshipHandler struct {
	friendshipLogic *logic.FriendshipLogic
}

// NewFriendshipHandler 创建好友关系处理器
func NewFriendshipHandler(db *gorm.DB) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipLogic: logic.NewFriendshipLogic(db),
	}
}

// SendRequest 发起好友请求
func (h *FriendshipHandler) SendRequest(c *gin.Context) {
	var req struct {
		UserId int64 `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 user_id")
		return
	}

	friendship, err := h.friendshipLogic.SendRequest(middleware.CurrentUserID(c), req.UserId)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "好友请求已发送", gin.H{"friendship": friendship})
}

// Respond 接受或拒绝好友请求
func (h *FriendshipHandler) Respond(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的好友请求ID")
		return
	}

	var req struct {
		Accept *bool `json:"accept" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 accept")
		return
	}

	if err := h.friendshipLogic.Respond(id, middleware.CurrentUserID(c), *req.Accept); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "已处理好友请求", nil)
}

// Remove 删除好友关系
func (h *FriendshipHandler) Remove(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的好友关系ID")
		return
	}

	if err := h.friendshipLogic.Remove(id, middleware.CurrentUserID(c)); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "好友关系已删除", nil)
}

// ListFriends 获取好友列表
func (h *FriendshipHandler) ListFriends(c *gin.Context) {
	friends, err := h.friendshipLogic.GetFriends(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"friends": friends})
}

// ListPending 获取待处理的好友请求
func (h *FriendshipHandler) ListPending(c *gin.Context) {
	requests, err := h.friendshipLogic.GetPendingRequests(middleware.CurrentUserID(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"requests": requests})
}
