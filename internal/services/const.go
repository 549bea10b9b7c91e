package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrPrestigeLock = errors.New("prestige locked")
var ErrCronJobLock = errors.New("cron job locked")

const (
	CONFIG_XP_COOLDOWN_SECONDS       = "XP_COOLDOWN_SECONDS"
	CONFIG_XP_BASE_MIN               = "XP_BASE_MIN"
	CONFIG_XP_BASE_MAX               = "XP_BASE_MAX"
	CONFIG_LEADERBOARD_LIMIT         = "LEADERBOARD_LIMIT"
	CONFIG_PRESTIGE_LEADERBOARD_SIZE = "PRESTIGE_LEADERBOARD_SIZE"
	CONFIG_DAILY_CHALLENGE_COUNT     = "DAILY_CHALLENGE_COUNT"
	CONFIG_WEEKLY_CHALLENGE_COUNT    = "WEEKLY_CHALLENGE_COUNT"
	CONFIG_CRONJOB_TIME_DAILY        = "CRONJOB_TIME_DAILY"
	CONFIG_CRONJOB_TIME_WEEKLY       = "CRONJOB_TIME_WEEKLY"
	CONFIG_CRONJOB_TIME_MONTHLY      = "CRONJOB_TIME_MONTHLY"

	DEFAULT_XP_COOLDOWN_SECONDS    = 60
	DEFAULT_XP_BASE_MIN            = 15
	DEFAULT_XP_BASE_MAX            = 25
	DEFAULT_LEADERBOARD_LIMIT      = 20
	DEFAULT_DAILY_CHALLENGE_COUNT  = 3
	DEFAULT_WEEKLY_CHALLENGE_COUNT = 2

	LEADERBOARD_XP_OVERALL = "xp_overall"
	LEADERBOARD_XP_WEEKLY  = "xp_weekly"
	LEADERBOARD_PRESTIGE   = "prestige"

	// prestige
	PRESTIGE_MIN_LEVEL              = 100
	PRESTIGE_XP_CARRY_RATE          = 0.1
	PRESTIGE_XP_BANK_RATE           = 0.2
	PRESTIGE_MONEY_PER_TIER         = 10000
	PRESTIGE_XP_PER_EFFECTIVE_LEVEL = 10000

	INGEST_RATE_LIMIT_PER_MINUTE = 600

	CACHE_TTL_15_SECONDS = 15 * time.Second
	CACHE_TTL_1_MIN      = 1 * time.Minute
	CACHE_TTL_5_MINS     = 5 * time.Minute
	CACHE_TTL_15_MINS    = 15 * time.Minute
	CACHE_TTL_1_HOUR     = 1 * time.Hour
)

func LockKeyPrestige(guildID, userID string) string {
	return fmt.Sprintf("lock:prestige:%s:%s", guildID, userID)
}

func LockKeyCronJob(name string) string {
	return fmt.Sprintf("lock:cron:%s", name)
}

// db-backed cache keys

func DBKeyProfile(userID, guildID string) string {
	return fmt.Sprintf("profile:%s:%s", guildID, userID)
}

func DBKeyGuildConfig(guildID string) string {
	return fmt.Sprintf("guild_config:%s", guildID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyUnlockedAchievements(userID, guildID string) string {
	return fmt.Sprintf("achievements:unlocked:%s:%s", guildID, userID)
}

func DBKeyLeaderboardByUser(name, guildID, userID string, limit int) string {
	return fmt.Sprintf("leaderboard_by_user:%s:%s:%s:%d", strings.ToLower(name), guildID, userID, limit)
}

func DBKeyGuildLeaderboardName(name, guildID string) string {
	return fmt.Sprintf("%s:%s", name, guildID)
}

func LimitKeyIngest(guildID string) string {
	return fmt.Sprintf("limit:ingest:%s", guildID)
}
