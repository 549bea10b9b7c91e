package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/datastore/redis_store"
	"phasbot/internal/models"
	"phasbot/internal/pkg/leveling"
)

// One-time rewards keyed by the prestige tier just reached.
var prestigeItemRewards = map[int]string{
	1:  "cursed_mirror",
	5:  "tarot_deck",
	10: "ouija_board",
}

var prestigeTitleRewards = map[int]string{
	1:  "Rookie Reborn",
	3:  "Seasoned Investigator",
	5:  "Ghost Whisperer",
	10: "Paranormal Legend",
	15: "Shadow Walker",
	20: "Eternal Hunter",
}

type ServicePrestige struct {
	container      *do.Injector
	postgresDB     *bun.DB
	redisDB        redis.UniversalClient
	rs             *redsync.Redsync
	serviceProfile *ServiceProfile
	serviceConfig  *ServiceConfig
}

func NewServicePrestige(container *do.Injector) (*ServicePrestige, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
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

	return &ServicePrestige{container, postgresDB, redisDB, rs, serviceProfile, serviceConfig}, nil
}

// Perform runs the one-way prestige transform. Concurrent attempts for the
// same user are serialized by a distributed lock plus a row lock, so the
// counter can only move forward once per reach of the cap.
func (service *ServicePrestige) Perform(ctx context.Context, userID, guildID string) (*models.PrestigeResult, error) {
	mutex := service.rs.NewMutex(LockKeyPrestige(guildID, userID))
	if err := mutex.TryLock(); err != nil {
		return nil, errorx.Wrap(ErrPrestigeLock, errorx.RateLimiting)
	}

	// nolint:errcheck
	defer mutex.Unlock()

	var result *models.PrestigeResult
	var updated *models.Profile
	err := service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		profile, err := datastore.LockProfile(ctx, tx, userID, guildID)
		if err != nil {
			return errorx.Wrap(err, errorx.NotExist)
		}

		result = ApplyPrestigeTransform(profile)
		if !result.Success {
			return nil
		}

		if err := datastore.SaveProfile(ctx, tx, profile); err != nil {
			return err
		}

		updated = profile
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Success {
		return result, nil
	}

	if err := service.serviceProfile.ClearProfileCache(ctx, userID, guildID); err != nil {
		log.Println(err)
	}

	service.refreshLeaderboardEntry(ctx, updated)
	return result, nil
}

// ApplyPrestigeTransform mutates the profile in memory: 20% of the current
// XP is banked as prestige XP, 10% carries over, the rest burns. Returns a
// Success false result below the threshold without touching the profile.
func ApplyPrestigeTransform(profile *models.Profile) *models.PrestigeResult {
	currentLevel := leveling.LevelFromXP(profile.XP)
	if currentLevel < PRESTIGE_MIN_LEVEL {
		return &models.PrestigeResult{
			Success:     false,
			Reason:      fmt.Sprintf("level %d is below the prestige threshold %d", currentLevel, PRESTIGE_MIN_LEVEL),
			OldPrestige: profile.Prestige,
			NewPrestige: profile.Prestige,
		}
	}

	oldPrestige := profile.Prestige
	newPrestige := oldPrestige + 1
	gain := int64(math.Floor(float64(profile.XP) * PRESTIGE_XP_BANK_RATE))
	carried := int64(math.Floor(float64(profile.XP) * PRESTIGE_XP_CARRY_RATE))
	moneyBonus := int64(PRESTIGE_MONEY_PER_TIER * newPrestige)

	profile.Prestige = newPrestige
	profile.PrestigeXP += gain
	profile.XP = carried
	profile.Level = leveling.LevelFromXP(carried)
	profile.Balance += moneyBonus
	profile.TotalEarnings += moneyBonus

	return &models.PrestigeResult{
		Success:        true,
		OldPrestige:    oldPrestige,
		NewPrestige:    newPrestige,
		PrestigeXPGain: gain,
		NewXP:          profile.XP,
		NewLevel:       profile.Level,
		MoneyBonus:     moneyBonus,
		SpecialRewards: grantTierRewards(profile, newPrestige),
		Bonuses:        Bonuses(newPrestige),
	}
}

// grantTierRewards applies the one-time item and title for the tier just
// reached. Already-held titles are not duplicated.
func grantTierRewards(profile *models.Profile, newPrestige int) []string {
	var special []string

	if item, ok := prestigeItemRewards[newPrestige]; ok {
		if profile.Inventory == nil {
			profile.Inventory = map[string]int{}
		}
		profile.Inventory[item]++
		special = append(special, item)
	}

	if title, ok := prestigeTitleRewards[newPrestige]; ok {
		if !profile.HasTitle(title) {
			profile.Titles = append(profile.Titles, title)
		}
		special = append(special, title)
	}

	return special
}

// EffectiveLevel is derived for display and ranking only, never persisted.
func EffectiveLevel(profile *models.Profile) int {
	return leveling.LevelFromXP(profile.XP) + profile.Prestige*100 + int(profile.PrestigeXP/PRESTIGE_XP_PER_EFFECTIVE_LEVEL)
}

// Bonuses describes what a given tier grants.
func Bonuses(prestige int) models.PrestigeBonuses {
	var special []string
	for tier := 1; tier <= prestige; tier++ {
		if item, ok := prestigeItemRewards[tier]; ok {
			special = append(special, item)
		}
		if title, ok := prestigeTitleRewards[tier]; ok {
			special = append(special, title)
		}
	}

	return models.PrestigeBonuses{
		XPMultiplier:    1 + float64(prestige)*0.1,
		MoneyMultiplier: 1 + float64(prestige)*0.05,
		MaxLevel:        100 + prestige*10,
		SpecialRewards:  special,
	}
}

// GetLeaderboard ranks by (prestige, prestige xp, xp) descending, attaching
// the computed effective level. Pure read.
func (service *ServicePrestige) GetLeaderboard(ctx context.Context, guildID string) ([]*models.LeaderboardItem, error) {
	limit, err := service.serviceConfig.GetIntConfig(ctx, CONFIG_PRESTIGE_LEADERBOARD_SIZE, DEFAULT_LEADERBOARD_LIMIT)
	if err != nil {
		return nil, err
	}

	profiles, err := datastore.GetTopProfilesByPrestige(ctx, service.postgresDB, guildID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*models.LeaderboardItem, 0, len(profiles))
	for i, p := range profiles {
		items = append(items, &models.LeaderboardItem{
			UserID:         p.UserID,
			Score:          float64(p.PrestigeXP),
			Rank:           i + 1,
			Level:          p.Level,
			Prestige:       p.Prestige,
			EffectiveLevel: EffectiveLevel(p),
		})
	}
	return items, nil
}

func (service *ServicePrestige) refreshLeaderboardEntry(ctx context.Context, profile *models.Profile) {
	name := DBKeyGuildLeaderboardName(LEADERBOARD_PRESTIGE, profile.GuildID)
	// composite score keeps redis ordering aligned with (prestige, prestige xp)
	_, err := redis_store.SetLeaderboard(ctx, service.redisDB, name, &models.LeaderboardItem{
		UserID: profile.UserID,
		Score:  float64(profile.Prestige)*1e12 + float64(profile.PrestigeXP),
	})
	if err != nil {
		log.Println("prestige leaderboard refresh:", err)
	}
}
