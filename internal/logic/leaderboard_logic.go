package logic

import (
	"context"
	"fmt"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/logger"
	"github.com/BabyGoatsInc/baby-goats-service/internal/model"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// LeaderboardEntry 排行榜条目
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UserId      int64  `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Sport       string `json:"sport"`
	TotalPoints int64  `json:"total_points"`
}

// LeaderboardLogic 积分排行榜业务逻辑。
// Redis ZSET 作为读缓存，由定时任务重建；缓存未命中时回落到数据库。
type LeaderboardLogic struct {
	db  *gorm.DB
	rdb *redis.Client
}

// NewLeaderboardLogic 创建排行榜业务逻辑
func NewLeaderboardLogic(db *gorm.DB, rdb *redis.Client) *LeaderboardLogic {
	return &LeaderboardLogic{db: db, rdb: rdb}
}

func leaderboardKey(sport string) string {
	if sport == "" {
		return "leaderboard:global"
	}
	return "leaderboard:sport:" + sport
}

// GetTopUsers 获取排行榜前N名
func (l *LeaderboardLogic) GetTopUsers(ctx context.Context, sport string, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if l.rdb != nil {
		entries, err := l.fromCache(ctx, sport, limit)
		if err == nil && len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			logger.Warn("Leaderboard cache read failed, falling back to database: %v", err)
		}
	}

	return l.fromDatabase(sport, limit)
}

// fromCache 从Redis ZSET读取
func (l *LeaderboardLogic) fromCache(ctx context.Context, sport string, limit int) ([]LeaderboardEntry, error) {
	results, err := l.rdb.ZRevRangeWithScores(ctx, leaderboardKey(sport), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	// ZSET里只有用户ID和分数，展示信息补查数据库
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Member.(string)
	}
	var users []model.UserModel
	if err := l.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	userById := make(map[string]*model.UserModel, len(users))
	for i := range users {
		userById[fmt.Sprintf("%d", users[i].Id)] = &users[i]
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, r := range results {
		user, ok := userById[r.Member.(string)]
		if !ok {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			UserId:      user.Id,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Sport:       user.Sport,
			TotalPoints: int64(r.Score),
		})
	}
	return entries, nil
}

// fromDatabase 缓存不可用时直接按总分查询
func (l *LeaderboardLogic) fromDatabase(sport string, limit int) ([]LeaderboardEntry, error) {
	var users []model.UserModel
	query := l.db.Where("is_active = ?", true)
	if sport != "" {
		query = query.Where("sport = ?", sport)
	}
	if err := query.Order("total_points DESC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			UserId:      user.Id,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			Sport:       user.Sport,
			TotalPoints: user.TotalPoints,
		}
	}
	return entries, nil
}

// RebuildCache 从数据库重建全部排行榜ZSET，由定时任务调用
func (l *LeaderboardLogic) RebuildCache(ctx context.Context) error {
	if l.rdb == nil {
		return nil
	}

	var users []model.UserModel
	if err := l.db.Where("is_active = ? AND total_points > 0", true).Find(&users).Error; err != nil {
		return fmt.Errorf("读取用户积分失败: %w", err)
	}

	globalMembers := make([]redis.Z, 0, len(users))
	sportMembers := make(map[string][]redis.Z)
	for _, user := range users {
		z := redis.Z{Score: float64(user.TotalPoints), Member: fmt.Sprintf("%d", user.Id)}
		globalMembers = append(globalMembers, z)
		if user.Sport != "" {
			sportMembers[user.Sport] = append(sportMembers[user.Sport], z)
		}
	}

	pipe := l.rdb.TxPipeline()
	pipe.Del(ctx, leaderboardKey(""))
	if len(globalMembers) > 0 {
		pipe.ZAdd(ctx, leaderboardKey(""), globalMembers...)
		pipe.Expire(ctx, leaderboardKey(""), 30*time.Minute)
	}
	for sport, members := range sportMembers {
		pipe.Del(ctx, leaderboardKey(sport))
		pipe.ZAdd(ctx, leaderboardKey(sport), members...)
		pipe.Expire(ctx, leaderboardKey(sport), 30*time.Minute)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("重建排行榜缓存失败: %w", err)
	}

	logger.Info("Leaderboard cache rebuilt: %d users, %d sports", len(users), len(sportMembers))
	return nil
}
