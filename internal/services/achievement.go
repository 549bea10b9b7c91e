package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/models"
	"phasbot/internal/pkg"
	"phasbot/internal/pkg/caching"
)

// AchievementUnlock pairs a catalog entry with the join row created for it.
type AchievementUnlock struct {
	Achievement     *models.Achievement     `json:"achievement"`
	UserAchievement *models.UserAchievement `json:"user_achievement"`
}

// AchievementCatalog is an immutable snapshot of the enabled catalog.
// Evaluators grab one reference at the start of a call; a concurrent reload
// swaps the pointer without disturbing them.
type AchievementCatalog struct {
	Entries  map[string]*models.Achievement
	LoadedAt time.Time
}

// customConditions is the closed registry of named predicates. Catalog
// entries naming anything else are flagged at load time and fail closed at
// evaluation time.
var customConditions = map[string]func(p *models.Profile, now time.Time) bool{
	"full_sanity": func(p *models.Profile, _ time.Time) bool {
		return p.Sanity == 100
	},
	"low_sanity": func(p *models.Profile, _ time.Time) bool {
		return p.Sanity <= 10
	},
	"night_owl": func(_ *models.Profile, now time.Time) bool {
		h := now.UTC().Hour()
		return h >= 0 && h < 5
	},
	"early_bird": func(_ *models.Profile, now time.Time) bool {
		h := now.UTC().Hour()
		return h >= 5 && h < 9
	},
	"weekend_warrior": func(_ *models.Profile, now time.Time) bool {
		return pkg.IsWeekend(now)
	},
}

type ServiceAchievement struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
	serviceProfile     *ServiceProfile

	catalog atomic.Pointer[AchievementCatalog]
}

func NewServiceAchievement(container *do.Injector) (*ServiceAchievement, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	readonlyPostgresDB, err := do.InvokeNamed[*bun.DB](container, "db-readonly")
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

	service := &ServiceAchievement{
		container:          container,
		postgresDB:         postgresDB,
		readonlyPostgresDB: readonlyPostgresDB,
		cache:              cache,
		readonlyCache:      readonlyCache,
		serviceProfile:     serviceProfile,
	}
	service.catalog.Store(&AchievementCatalog{Entries: map[string]*models.Achievement{}})
	return service, nil
}

// Reload replaces the catalog snapshot from storage. Safe to call while
// evaluations are in flight.
func (service *ServiceAchievement) Reload(ctx context.Context) error {
	rows, err := datastore.ListEnabledAchievements(ctx, service.postgresDB)
	if err != nil {
		return err
	}

	entries := make(map[string]*models.Achievement, len(rows))
	for _, a := range rows {
		if name := a.Requirements.CustomCondition; name != "" {
			if _, ok := customConditions[name]; !ok {
				log.Println("achievement catalog: unknown custom condition", name, "on", a.ID)
			}
		}
		entries[a.ID] = a
	}

	service.catalog.Store(&AchievementCatalog{Entries: entries, LoadedAt: time.Now()})
	log.Println("achievement catalog loaded:", len(entries), "entries")
	return nil
}

func (service *ServiceAchievement) Catalog() *AchievementCatalog {
	return service.catalog.Load()
}

// requirementsMet evaluates the sparse threshold bag plus the optional custom
// condition against a profile snapshot. Absent fields pass vacuously; an
// unknown custom condition fails closed.
func requirementsMet(profile *models.Profile, req models.AchievementRequirements, now time.Time) bool {
	checksInt := []struct {
		threshold *int
		value     int
	}{
		{req.Level, profile.Level},
		{req.MessageStreak, profile.MessageStreak},
		{req.TotalInvestigations, profile.TotalInvestigations},
		{req.SuccessfulInvestigations, profile.SuccessfulInvestigations},
		{req.TotalHunts, profile.TotalHunts},
		{req.SuccessfulHunts, profile.SuccessfulHunts},
		{req.HuntStreak, profile.HuntStreak},
		{req.NightmareHunts, profile.NightmareHunts},
		{req.ItemsUsed, profile.ItemsUsed},
		{req.PhotosTaken, profile.PhotosTaken},
		{req.GhostsExorcised, profile.GhostsExorcised},
		{req.AccountAgeDays, profile.AccountAgeDays(now)},
	}
	for _, c := range checksInt {
		if c.threshold != nil && c.value < *c.threshold {
			return false
		}
	}

	checksInt64 := []struct {
		threshold *int64
		value     int64
	}{
		{req.TotalXP, profile.XP},
		{req.MessageCount, profile.MessageCount},
		{req.Balance, profile.Balance},
		{req.TotalEarnings, profile.TotalEarnings},
		{req.MoneySpent, profile.MoneySpent},
	}
	for _, c := range checksInt64 {
		if c.threshold != nil && c.value < *c.threshold {
			return false
		}
	}

	if req.CustomCondition != "" {
		predicate, ok := customConditions[req.CustomCondition]
		if !ok {
			return false
		}
		return predicate(profile, now)
	}

	return true
}

// eligibleUnlocks evaluates every not-yet-unlocked catalog entry against the
// profile snapshot. Pure: entries already in unlockedSet come back empty no
// matter how often the snapshot is re-evaluated.
func eligibleUnlocks(catalog *AchievementCatalog, profile *models.Profile, unlockedSet map[string]bool, now time.Time) []*models.Achievement {
	var eligible []*models.Achievement
	for _, achievement := range catalog.Entries {
		if unlockedSet[achievement.ID] {
			continue
		}
		if achievement.GuildID != nil && *achievement.GuildID != profile.GuildID {
			continue
		}
		if !requirementsMet(profile, achievement.Requirements, now) {
			continue
		}
		eligible = append(eligible, achievement)
	}
	return eligible
}

// Check evaluates every not-yet-unlocked catalog entry against the snapshot
// and unlocks the qualifying ones. Only unlocks won by this call come back;
// a concurrent evaluation losing the insert race applies nothing. Rewards
// land on the row re-read under a lock, never on the stale snapshot.
func (service *ServiceAchievement) Check(ctx context.Context, profile *models.Profile) ([]AchievementUnlock, error) {
	catalog := service.Catalog()
	if len(catalog.Entries) == 0 {
		return nil, nil
	}

	unlockedIDs, err := service.getUnlockedIDs(ctx, profile.UserID, profile.GuildID)
	if err != nil {
		return nil, err
	}

	unlockedSet := make(map[string]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlockedSet[id] = true
	}

	now := time.Now()
	var unlocks []AchievementUnlock
	for _, achievement := range eligibleUnlocks(catalog, profile, unlockedSet, now) {
		row := &models.UserAchievement{
			UserID:        profile.UserID,
			GuildID:       profile.GuildID,
			AchievementID: achievement.ID,
			UnlockedAt:    now,
			Progress:      100,
		}
		won, err := datastore.InsertUserAchievementIfAbsent(ctx, service.postgresDB, row)
		if err != nil {
			log.Println("achievement unlock:", achievement.ID, err)
			continue
		}
		if !won {
			// someone beat us to it; rewards stay untouched
			continue
		}

		if err := datastore.IncrementAchievementUnlockedBy(ctx, service.postgresDB, achievement.ID); err != nil {
			log.Println("achievement counter:", achievement.ID, err)
		}

		unlocks = append(unlocks, AchievementUnlock{Achievement: achievement, UserAchievement: row})
	}

	if len(unlocks) == 0 {
		return nil, nil
	}

	err = service.serviceProfile.MutateProfile(ctx, profile, func(locked *models.Profile) {
		for _, unlock := range unlocks {
			if !locked.HasAchievement(unlock.Achievement.ID) {
				locked.Achievements = append(locked.Achievements, unlock.Achievement.ID)
				locked.AchievementPoints += unlock.Achievement.Points
			}
			ApplyRewards(locked, unlock.Achievement.Rewards, now)
		}
	})
	if err != nil {
		return unlocks, err
	}

	return unlocks, nil
}

func (service *ServiceAchievement) getUnlockedIDs(ctx context.Context, userID, guildID string) ([]string, error) {
	callback := func() ([]string, error) {
		return datastore.ListUnlockedAchievementIDs(ctx, service.postgresDB, userID, guildID)
	}
	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyUnlockedAchievements(userID, guildID), CACHE_TTL_1_MIN, callback)
}

// GetAchievementsWithStatus decorates the catalog with per-user unlock state
// for the read API.
func (service *ServiceAchievement) GetAchievementsWithStatus(ctx context.Context, userID, guildID string) ([]*models.AchievementWithStatus, error) {
	catalog := service.Catalog()

	rows, err := datastore.GetUserAchievements(ctx, service.readonlyPostgresDB, userID, guildID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		unlockedAt[r.AchievementID] = r.UnlockedAt
	}

	out := make([]*models.AchievementWithStatus, 0, len(catalog.Entries))
	for _, achievement := range catalog.Entries {
		if achievement.GuildID != nil && *achievement.GuildID != guildID {
			continue
		}

		status := &models.AchievementWithStatus{Achievement: *achievement}
		if at, ok := unlockedAt[achievement.ID]; ok {
			status.Unlocked = true
			status.UnlockedAt = &at
		}
		out = append(out, status)
	}
	return out, nil
}
