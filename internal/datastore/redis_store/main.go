package redis_store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"phasbot/internal/models"
)

func dbKeyCooldown(guildID, userID string) string {
	return fmt.Sprintf("xp:cooldown:%s:%s", guildID, userID)
}

func dbKeyLeaderboard(name string) string {
	return fmt.Sprintf("leaderboard:%s", strings.ToLower(name))
}

func dbKeyActivity(guildID, userID string) string {
	return fmt.Sprintf("activity:%s:%s", guildID, userID)
}

// ClaimCooldown marks the user as having just earned XP. It returns true when
// the claim succeeded and false when the user is still inside the window.
func ClaimCooldown(ctx context.Context, cmd redis.Cmdable, guildID, userID string, window time.Duration) (bool, error) {
	return cmd.SetNX(ctx, dbKeyCooldown(guildID, userID), time.Now().UTC().Format(time.RFC3339), window).Result()
}

// Activity is a transient per-user snapshot kept alongside the profile so the
// read API and the daily-activity challenge action don't hit Postgres.
type Activity struct {
	LastMessageAt time.Time `msgpack:"last_message_at"`
	MessagesToday int       `msgpack:"messages_today"`
	EpochDay      int       `msgpack:"epoch_day"`
}

func GetActivity(ctx context.Context, cmd redis.Cmdable, guildID, userID string) (*Activity, error) {
	b, err := cmd.Get(ctx, dbKeyActivity(guildID, userID)).Bytes()
	if err != nil {
		return nil, err
	}

	var v Activity
	if err := msgpack.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func SaveActivity(ctx context.Context, cmd redis.Cmdable, guildID, userID string, v *Activity) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return cmd.Set(ctx, dbKeyActivity(guildID, userID), b, 48*time.Hour).Err()
}

func SetLeaderboard(ctx context.Context, cmd redis.Cmdable, name string, v *models.LeaderboardItem) (*models.LeaderboardItem, error) {
	err := cmd.ZAdd(ctx, dbKeyLeaderboard(name), redis.Z{
		Score:  v.Score,
		Member: v.UserID,
	}).Err()
	if err != nil {
		return nil, err
	}
	return v, nil
}

func GetLeaderboard(ctx context.Context, cmd redis.Cmdable, name string, limit int) ([]*models.LeaderboardItem, error) {
	zs, err := cmd.ZRevRangeWithScores(ctx, dbKeyLeaderboard(name), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*models.LeaderboardItem, 0, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		items = append(items, &models.LeaderboardItem{
			UserID: member,
			Score:  z.Score,
			Rank:   i + 1,
		})
	}
	return items, nil
}

func GetRank(ctx context.Context, cmd redis.Cmdable, name string, userID string) (int64, error) {
	return cmd.ZRevRank(ctx, dbKeyLeaderboard(name), userID).Result()
}

func GetScore(ctx context.Context, cmd redis.Cmdable, name string, userID string) (float64, error) {
	return cmd.ZScore(ctx, dbKeyLeaderboard(name), userID).Result()
}

func ClearLeaderboard(ctx context.Context, cmd redis.Cmdable, name string) error {
	return cmd.Del(ctx, dbKeyLeaderboard(name)).Err()
}
