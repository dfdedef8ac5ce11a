package router

import (
	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/BabyGoatsInc/baby-goats-service/internal/handler"
	"github.com/BabyGoatsInc/baby-goats-service/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "baby-goats-service",
		})
	})

	authHandler := handler.NewAuthHandler(db, cfg.Auth)
	profileHandler := handler.NewProfileHandler(db)
	teamHandler := handler.NewTeamHandler(db)
	teamChallengeHandler := handler.NewTeamChallengeHandler(db)
	friendshipHandler := handler.NewFriendshipHandler(db)
	messageHandler := handler.NewMessageHandler(db)
	notificationHandler := handler.NewNotificationHandler(db)
	highlightHandler := handler.NewHighlightHandler(db)
	streamHandler := handler.NewStreamHandler(db)
	leaderboardHandler := handler.NewLeaderboardHandler(db, rdb)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 公开路由
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}
		v1.GET("/leaderboard", leaderboardHandler.Top)

		// 需要登录的路由
		authed := v1.Group("")
		authed.Use(middleware.JWTAuth(cfg.Auth.JWTSecret))
		{
			// 个人资料
			authed.GET("/profiles/me", profileHandler.GetMe)
			authed.PUT("/profiles/me", profileHandler.UpdateMe)
			authed.GET("/profiles/:id", profileHandler.GetUser)
			authed.POST("/profiles/me/stats", profileHandler.UpsertStat)
			authed.GET("/profiles/:id/stats", profileHandler.GetStats)
			authed.GET("/profiles/me/points", profileHandler.GetPointHistory)
			authed.GET("/profiles/:id/highlights", highlightHandler.ListByUser)

			// 队伍
			teams := authed.Group("/teams")
			{
				teams.POST("", teamHandler.Create)
				teams.GET("/mine", teamHandler.MyTeams)
				teams.GET("/:id", teamHandler.Get)
				teams.POST("/:id/join", teamHandler.Join)
				teams.POST("/:id/leave", teamHandler.Leave)
				teams.PUT("/:id/roles", teamHandler.SetRole)
			}

			// 团队挑战
			teamChallenges := authed.Group("/team-challenges")
			{
				teamChallenges.GET("", teamChallengeHandler.List)
				teamChallenges.POST("", teamChallengeHandler.Post)
				teamChallenges.PUT("", teamChallengeHandler.Contribute)
				teamChallenges.GET("/:id", teamChallengeHandler.Get)
				teamChallenges.DELETE("/:id", teamChallengeHandler.Deactivate)
				teamChallenges.GET("/participations/:id/contributions", teamChallengeHandler.GetContributions)
			}

			// 好友
			friends := authed.Group("/friends")
			{
				friends.POST("/requests", friendshipHandler.SendRequest)
				friends.PUT("/requests/:id", friendshipHandler.Respond)
				friends.GET("/requests", friendshipHandler.ListPending)
				friends.GET("", friendshipHandler.ListFriends)
				friends.DELETE("/:id", friendshipHandler.Remove)
			}

			// 私信
			messages := authed.Group("/messages")
			{
				messages.POST("", messageHandler.Send)
				messages.GET("/unread-count", messageHandler.UnreadCount)
				messages.GET("/:id", messageHandler.Conversation)
			}

			// 通知
			notifications := authed.Group("/notifications")
			{
				notifications.GET("", notificationHandler.List)
				notifications.PUT("/read-all", notificationHandler.MarkAllRead)
				notifications.PUT("/:id/read", notificationHandler.MarkRead)
			}

			// 集锦
			highlights := authed.Group("/highlights")
			{
				highlights.POST("", highlightHandler.Create)
				highlights.GET("/:id", highlightHandler.Get)
				highlights.PUT("/:id", highlightHandler.Update)
				highlights.DELETE("/:id", highlightHandler.Delete)
			}

			// 直播
			streams := authed.Group("/streams")
			{
				streams.POST("", streamHandler.Schedule)
				streams.GET("/live", streamHandler.ListLive)
				streams.POST("/:id/start", streamHandler.Start)
				streams.POST("/:id/end", streamHandler.End)
				streams.POST("/:id/watch", streamHandler.Watch)
			}
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
