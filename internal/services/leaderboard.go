package services

import (
	"context"
	"fmt"
	"log"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/datastore/redis_store"
	"phasbot/internal/models"
	"phasbot/internal/pkg/caching"
)

type ServiceLeaderboard struct {
	container     *do.Injector
	redisDB       redis.UniversalClient
	redisDBCache  redis.UniversalClient
	rs            *redsync.Redsync
	postgresDB    *bun.DB
	cache         caching.Cache
	readonlyCache caching.ReadOnlyCache

	serviceProfile *ServiceProfile
	serviceConfig  *ServiceConfig
}

func NewServiceLeaderboard(container *do.Injector) (*ServiceLeaderboard, error) {
	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	redisDBCache, err := do.InvokeNamed[redis.UniversalClient](container, "redis-cache")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	readonlyCache, err := do.Invoke[caching.ReadOnlyCache](container)
	if err != nil {
		return nil, err
	}

	serviceProfile, err := do.Invoke[*ServiceProfile](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	return &ServiceLeaderboard{container, redisDB, redisDBCache, rs, postgresDB, cache, readonlyCache, serviceProfile, serviceConfig}, nil
}

func (service *ServiceLeaderboard) GetOverallLeaderboard(ctx context.Context, guildID, userID string) (*models.LeaderboardResponse, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, DEFAULT_LEADERBOARD_LIMIT)
	return service.getLeaderboard(ctx, LEADERBOARD_XP_OVERALL, guildID, userID, limit)
}

func (service *ServiceLeaderboard) GetWeeklyLeaderboard(ctx context.Context, guildID, userID string) (*models.LeaderboardResponse, error) {
	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, DEFAULT_LEADERBOARD_LIMIT)
	return service.getLeaderboard(ctx, LEADERBOARD_XP_WEEKLY, guildID, userID, limit)
}

func (service *ServiceLeaderboard) ClearLeaderboardCache(ctx context.Context, leaderboardName, guildID string) error {
	return caching.DeleteKeys(ctx, service.redisDBCache, fmt.Sprintf("leaderboard_by_user:%s:%s*", leaderboardName, guildID))
}

func (service *ServiceLeaderboard) getLeaderboard(ctx context.Context, leaderboardName, guildID, userID string, limit int) (*models.LeaderboardResponse, error) {
	name := DBKeyGuildLeaderboardName(leaderboardName, guildID)

	callback := func() (*models.LeaderboardResponse, error) {
		leaderboard, err := redis_store.GetLeaderboard(ctx, service.redisDB, name, limit)
		if err != nil {
			return nil, err
		}

		rank, err := redis_store.GetRank(ctx, service.redisDB, name, userID)

		score := float64(0)
		if err == redis.Nil {
			rank = -1
		} else {
			score, err = redis_store.GetScore(ctx, service.redisDB, name, userID)
		}

		if err != nil && err != redis.Nil {
			return nil, err
		}

		for _, item := range leaderboard {
			profile, err := service.serviceProfile.FindProfile(ctx, item.UserID, guildID)
			if err != nil || profile == nil {
				continue
			}
			item.Level = profile.Level
			item.Prestige = profile.Prestige
			item.EffectiveLevel = EffectiveLevel(profile)
		}

		return &models.LeaderboardResponse{
			Leaderboard: leaderboard,
			Me: &models.LeaderboardItem{
				UserID: userID,
				Score:  score,
				Rank:   int(rank + 1),
			},
		}, nil
	}

	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyLeaderboardByUser(leaderboardName, guildID, userID, limit), CACHE_TTL_1_MIN, callback)
}

// Rebuild repopulates one guild's ZSET from Postgres. Used by the cron runner
// after periodic resets and as a recovery path when redis is flushed.
func (service *ServiceLeaderboard) Rebuild(ctx context.Context, leaderboardName, guildID string) error {
	mutex := service.rs.NewMutex(LockKeyCronJob("leaderboard-rebuild-" + leaderboardName + "-" + guildID))
	if err := mutex.TryLock(); err != nil {
		return errorx.Wrap(ErrCronJobLock, errorx.RateLimiting)
	}

	// nolint:errcheck
	defer mutex.Unlock()

	name := DBKeyGuildLeaderboardName(leaderboardName, guildID)
	if err := redis_store.ClearLeaderboard(ctx, service.redisDB, name); err != nil {
		return err
	}

	limit, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_LEADERBOARD_LIMIT, DEFAULT_LEADERBOARD_LIMIT)
	profiles, err := datastore.GetTopProfilesByXP(ctx, service.postgresDB, guildID, limit*10)
	if err != nil {
		return err
	}

	for _, profile := range profiles {
		score := float64(profile.XP)
		if leaderboardName == LEADERBOARD_XP_WEEKLY {
			score = float64(profile.WeeklyXP)
		}
		if _, err := redis_store.SetLeaderboard(ctx, service.redisDB, name, &models.LeaderboardItem{UserID: profile.UserID, Score: score}); err != nil {
			return err
		}
	}

	if err := service.ClearLeaderboardCache(ctx, leaderboardName, guildID); err != nil {
		log.Println(err)
	}

	log.Println("Rebuilt leaderboard:", name, "entries:", len(profiles))
	return nil
}

// ResetWeekly clears every guild's weekly board. Invoked at the week
// boundary together with the weekly counter reset.
func (service *ServiceLeaderboard) ResetWeekly(ctx context.Context, guildIDs []string) error {
	for _, guildID := range guildIDs {
		name := DBKeyGuildLeaderboardName(LEADERBOARD_XP_WEEKLY, guildID)
		if err := redis_store.ClearLeaderboard(ctx, service.redisDB, name); err != nil {
			return err
		}
		if err := service.ClearLeaderboardCache(ctx, LEADERBOARD_XP_WEEKLY, guildID); err != nil {
			log.Println(err)
		}
	}
	return nil
}
