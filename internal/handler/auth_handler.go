package handler

import (
	"net/http"

	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/logic"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler 注册登录处理器
type AuthHandler struct {
	userLogic *logic.UserLogic
	authCfg   config.AuthConfig
}

// NewAuthHandler 创建注册登录处理器
func NewAuthHandler(db *gorm.DB, authCfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		userLogic: logic.NewUserLogic(db),
		authCfg:   authCfg,
	}
}

// Register 注册新用户
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 username、email 或 password")
		return
	}

	user, err := h.userLogic.Register(req.Username, req.Email, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user, h.authCfg.JWTSecret, h.authCfg.TokenExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "注册成功", gin.H{
		"user":  user,
		"token": token,
	})
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "缺少字段 username 或 password")
		return
	}

	user, err := h.userLogic.Authenticate(req.Username, req.Password)
	if err != nil {
		HandleError(c, err)
		return
	}

	token, err := middleware.GenerateToken(user, h.authCfg.JWTSecret, h.authCfg.TokenExpiry)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "登录成功", gin.H{
		"user":  user,
		"token": token,
	})
}
