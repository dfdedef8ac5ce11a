package handler

import (
	"net/http"
	"strconv"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LeaderboardHandler 排行榜处理器
type LeaderboardHandler struct {
	leaderboardLogic *logic.LeaderboardLogic
}

// NewLeaderboardHandler 创建排行榜处理器
func NewLeaderboardHandler(db *gorm.DB, rdb *redis.Client) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardLogic: logic.NewLeaderboardLogic(db, rdb),
	}
}

// Top 获取积分排行榜，可按运动项目过滤
func (h *LeaderboardHandler) Top(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	sport := c.Query("sport")

	entries, err := h.leaderboardLogic.GetTopUsers(c.Request.Context(), sport, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "", gin.H{"leaderboard": entries})
}
