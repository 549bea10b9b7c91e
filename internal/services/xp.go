package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/datastore/redis_store"
	"phasbot/internal/interfaces"
	"phasbot/internal/models"
	"phasbot/internal/pkg"
	"phasbot/internal/pkg/leveling"
)

// XPAwardResult is what one inbound message produced.
type XPAwardResult struct {
	Awarded    bool                 `json:"awarded"`
	Reason     string               `json:"reason,omitempty"`
	XPGained   int64                `json:"xp_gained"`
	NewXP      int64                `json:"new_xp"`
	Multiplier *MultiplierBreakdown `json:"multiplier,omitempty"`
	LevelUp    *leveling.LevelUp    `json:"level_up,omitempty"`

	Achievements []AchievementUnlock   `json:"achievements,omitempty"`
	Challenges   []ChallengeCompletion `json:"challenges,omitempty"`
}

type ServiceXP struct {
	container          *do.Injector
	postgresDB         *bun.DB
	redisDB            redis.UniversalClient
	serviceProfile     *ServiceProfile
	serviceConfig      *ServiceConfig
	serviceGuild       *ServiceGuild
	serviceAchievement *ServiceAchievement
	serviceChallenge   *ServiceChallenge
	notifier           interfaces.Notifier
}

func NewServiceXP(container *do.Injector) (*ServiceXP, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	redisDB, err := do.InvokeNamed[redis.UniversalClient](container, "redis-db")
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

	serviceGuild, err := do.Invoke[*ServiceGuild](container)
	if err != nil {
		return nil, err
	}

	serviceAchievement, err := do.Invoke[*ServiceAchievement](container)
	if err != nil {
		return nil, err
	}

	serviceChallenge, err := do.Invoke[*ServiceChallenge](container)
	if err != nil {
		return nil, err
	}

	notifier, err := do.Invoke[interfaces.Notifier](container)
	if err != nil {
		return nil, err
	}

	return &ServiceXP{
		container:          container,
		postgresDB:         postgresDB,
		redisDB:            redisDB,
		serviceProfile:     serviceProfile,
		serviceConfig:      serviceConfig,
		serviceGuild:       serviceGuild,
		serviceAchievement: serviceAchievement,
		serviceChallenge:   serviceChallenge,
		notifier:           notifier,
	}, nil
}

// HandleMessage runs the per-message award pipeline in its strict order:
// cooldown gate, profile resolution, streak, multiplier over pre-award state,
// the single award write, then level-up, achievement and challenge effects.
// The last two stages are best effort; their failure never unwinds the award.
func (service *ServiceXP) HandleMessage(ctx context.Context, event *models.MessageEvent) (*XPAwardResult, error) {
	now := event.SentAt
	if now.IsZero() {
		now = time.Now()
	}

	guildConfig, err := service.serviceGuild.GetConfig(ctx, event.GuildID)
	if err != nil {
		return nil, err
	}

	cooldown := time.Duration(guildConfig.XPCooldownSeconds) * time.Second
	if cooldown <= 0 {
		seconds, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_COOLDOWN_SECONDS, DEFAULT_XP_COOLDOWN_SECONDS)
		cooldown = time.Duration(seconds) * time.Second
	}

	claimed, err := redis_store.ClaimCooldown(ctx, service.redisDB, event.GuildID, event.UserID, cooldown)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return &XPAwardResult{Awarded: false, Reason: "cooldown"}, nil
	}

	profile, err := service.serviceProfile.FindOrCreateProfile(ctx, event.UserID, event.GuildID)
	if err != nil {
		return nil, err
	}

	streak := NextStreak(profile, now)
	today := pkg.EpochDay(now)

	// multiplier sees the pre-award snapshot
	breakdown := ComputeMultiplier(profile, now, MultiplierOptions{MessageLength: event.MessageLength})

	baseMin, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_BASE_MIN, DEFAULT_XP_BASE_MIN)
	baseMax, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_XP_BASE_MAX, DEFAULT_XP_BASE_MAX)
	base := pkg.RandBetween(baseMin, baseMax)
	xpGained := int64(math.Floor(float64(base) * breakdown.TotalMultiplier))

	oldXP := profile.XP

	var updated *models.Profile
	err = service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		updated, err = datastore.AwardMessageXP(ctx, tx, event.UserID, event.GuildID, xpGained, streak, today)
		if err != nil {
			return err
		}
		return datastore.SetProfileLevel(ctx, tx, updated.ID, leveling.LevelFromXP(updated.XP))
	})
	if err != nil {
		return nil, err
	}
	updated.Level = leveling.LevelFromXP(updated.XP)

	if err := service.serviceProfile.ClearProfileCache(ctx, event.UserID, event.GuildID); err != nil {
		log.Println(err)
	}

	// the multiplier skipped expired boosters; drop them now that the award
	// is committed
	for _, booster := range profile.XPBoosters {
		if !booster.Active(now) {
			if _, err := service.serviceProfile.PruneExpiredBoosters(ctx, event.UserID, event.GuildID); err != nil {
				log.Println("booster prune:", err)
			}
			break
		}
	}

	result := &XPAwardResult{
		Awarded:    true,
		XPGained:   xpGained,
		NewXP:      updated.XP,
		Multiplier: breakdown,
	}

	levelUp := leveling.CheckLevelUp(oldXP, updated.XP)
	if levelUp.LeveledUp {
		result.LevelUp = &levelUp
		service.emitLevelUp(ctx, event, guildConfig, &levelUp, xpGained)
	}

	service.refreshLeaderboards(ctx, event.GuildID, event.UserID, updated)

	// stages below are independent of the award: log and carry on
	unlocks, err := service.serviceAchievement.Check(ctx, updated)
	if err != nil {
		log.Println("achievement check:", err)
	}
	result.Achievements = unlocks
	for _, unlock := range unlocks {
		service.notifier.AchievementUnlocked(ctx, &models.AchievementUnlockedEvent{
			UserID:      event.UserID,
			GuildID:     event.GuildID,
			Achievement: unlock.Achievement,
		})
	}

	result.Challenges = service.advanceMessageChallenges(ctx, event, updated, xpGained, now, today)
	return result, nil
}

func (service *ServiceXP) emitLevelUp(ctx context.Context, event *models.MessageEvent, guildConfig *models.GuildConfig, levelUp *leveling.LevelUp, xpGained int64) {
	roles := RolesForLevelUp(guildConfig.LevelRoles, levelUp.OldLevel, levelUp.NewLevel)

	service.notifier.LevelUp(ctx, &models.LevelUpEvent{
		UserID:       event.UserID,
		GuildID:      event.GuildID,
		OldLevel:     levelUp.OldLevel,
		NewLevel:     levelUp.NewLevel,
		XPGained:     xpGained,
		RoleRewards:  roles,
		AnnounceInID: guildConfig.AnnounceChannelID,
	})
}

// RolesForLevelUp resolves the role reward of every level crossed in
// (oldLevel, newLevel], not just the final one.
func RolesForLevelUp(levelRoles map[string]string, oldLevel, newLevel int) []string {
	var roles []string
	for level := oldLevel + 1; level <= newLevel; level++ {
		if role, ok := levelRoles[fmt.Sprintf("%d", level)]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// advanceMessageChallenges feeds the three message-derived actions. beActive
// fires once per calendar day, tracked in the transient activity record.
func (service *ServiceXP) advanceMessageChallenges(ctx context.Context, event *models.MessageEvent, profile *models.Profile, xpGained int64, now time.Time, today int) []ChallengeCompletion {
	var completions []ChallengeCompletion

	done, err := service.serviceChallenge.UpdateProgress(ctx, profile, models.ActionSendMessage, 1)
	if err != nil {
		log.Println("challenge sendMessage:", err)
	}
	completions = append(completions, done...)

	if xpGained > 0 {
		done, err = service.serviceChallenge.UpdateProgress(ctx, profile, models.ActionGainXP, xpGained)
		if err != nil {
			log.Println("challenge gainXp:", err)
		}
		completions = append(completions, done...)
	}

	activity, err := redis_store.GetActivity(ctx, service.redisDB, event.GuildID, event.UserID)
	if err != nil && err != redis.Nil {
		log.Println("activity fetch:", err)
	}

	firstToday := activity == nil || activity.EpochDay != today
	if firstToday {
		done, err = service.serviceChallenge.UpdateProgress(ctx, profile, models.ActionBeActive, 1)
		if err != nil {
			log.Println("challenge beActive:", err)
		}
		completions = append(completions, done...)
	}

	next := &redis_store.Activity{LastMessageAt: now, EpochDay: today, MessagesToday: 1}
	if activity != nil && activity.EpochDay == today {
		next.MessagesToday = activity.MessagesToday + 1
	}
	if err := redis_store.SaveActivity(ctx, service.redisDB, event.GuildID, event.UserID, next); err != nil {
		log.Println("activity save:", err)
	}

	for _, completion := range completions {
		service.notifier.ChallengeCompleted(ctx, &models.ChallengeCompletedEvent{
			UserID:    event.UserID,
			GuildID:   event.GuildID,
			Challenge: completion.Challenge,
		})
	}
	return completions
}

func (service *ServiceXP) refreshLeaderboards(ctx context.Context, guildID, userID string, profile *models.Profile) {
	pairs := []struct {
		name  string
		score float64
	}{
		{LEADERBOARD_XP_OVERALL, float64(profile.XP)},
		{LEADERBOARD_XP_WEEKLY, float64(profile.WeeklyXP)},
	}
	for _, p := range pairs {
		name := DBKeyGuildLeaderboardName(p.name, guildID)
		if _, err := redis_store.SetLeaderboard(ctx, service.redisDB, name, &models.LeaderboardItem{UserID: userID, Score: p.score}); err != nil {
			log.Println("leaderboard refresh:", p.name, err)
		}
	}
}

// PreviewMultiplier exposes the breakdown for the read API without touching
// any state.
func (service *ServiceXP) PreviewMultiplier(ctx context.Context, userID, guildID string) (*MultiplierBreakdown, error) {
	profile, err := service.serviceProfile.FindProfile(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}
	return ComputeMultiplier(profile, time.Now(), MultiplierOptions{MessageLength: -1}), nil
}
