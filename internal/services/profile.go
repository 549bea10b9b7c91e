package services

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/pkg/caching"

	"phasbot/internal/models"
	"phasbot/internal/pkg/leveling"
)

type ServiceProfile struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceProfile(container *do.Injector) (*ServiceProfile, error) {
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

	return &ServiceProfile{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

func (service *ServiceProfile) FindProfile(ctx context.Context, userID, guildID string) (*models.Profile, error) {
	callback := func() (*models.Profile, error) {
		return datastore.FindProfile(ctx, service.readonlyPostgresDB, userID, guildID)
	}
	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyProfile(userID, guildID), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceProfile) FindProfileNoCache(ctx context.Context, userID, guildID string) (*models.Profile, error) {
	// write db to dodge replica lag on hot paths
	profile, err := datastore.FindProfile(ctx, service.postgresDB, userID, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return profile, err
}

// FindOrCreateProfile lazily creates the per-user-per-guild record on the
// first qualifying event.
func (service *ServiceProfile) FindOrCreateProfile(ctx context.Context, userID, guildID string) (*models.Profile, error) {
	profile, err := service.FindProfileNoCache(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	if profile != nil {
		return profile, nil
	}

	now := time.Now()
	newProfile := &models.Profile{
		UserID:    userID,
		GuildID:   guildID,
		Sanity:    100,
		CreatedAt: now,
		UpdatedAt: now,
	}

	log.Println("Create new profile:", "user:", userID, "guild:", guildID)
	return datastore.CreateProfile(ctx, service.postgresDB, newProfile)
}

// MutateProfile re-reads the row FOR UPDATE, applies fn to the locked copy,
// and persists it in the same transaction. Read-modify-write callers go
// through here so a concurrent increment-style award landing between their
// read and this write is never erased. The caller's in-memory profile is
// refreshed from the locked row.
func (service *ServiceProfile) MutateProfile(ctx context.Context, profile *models.Profile, fn func(locked *models.Profile)) error {
	if profile == nil {
		return errors.New("profile is nil")
	}

	err := service.postgresDB.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		locked, err := datastore.LockProfile(ctx, tx, profile.UserID, profile.GuildID)
		if err != nil {
			return err
		}

		fn(locked)

		// keep the stored level in lockstep with the stored xp
		locked.Level = leveling.LevelFromXP(locked.XP)

		if err := datastore.SaveProfile(ctx, tx, locked); err != nil {
			return err
		}

		*profile = *locked
		return nil
	})
	if err != nil {
		return err
	}

	return service.ClearProfileCache(ctx, profile.UserID, profile.GuildID)
}

// AddBooster upserts by name: an existing booster with the same name gets the
// new expiry, otherwise the grant is appended.
func (service *ServiceProfile) AddBooster(ctx context.Context, userID, guildID string, booster models.Booster) (bool, error) {
	profile, err := service.FindProfileNoCache(ctx, userID, guildID)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}

	if booster.AddedAt.IsZero() {
		booster.AddedAt = time.Now()
	}

	replaced := false
	for i, b := range profile.XPBoosters {
		if b.Name == booster.Name {
			profile.XPBoosters[i].ExpiresAt = booster.ExpiresAt
			replaced = true
			break
		}
	}
	if !replaced {
		profile.XPBoosters = append(profile.XPBoosters, booster)
	}

	err = datastore.UpdateProfileBoosters(ctx, service.postgresDB, profile.ID, profile.XPBoosters)
	if err != nil {
		return false, err
	}

	return true, service.ClearProfileCache(ctx, userID, guildID)
}

func (service *ServiceProfile) RemoveBooster(ctx context.Context, userID, guildID, name string) (bool, error) {
	profile, err := service.FindProfileNoCache(ctx, userID, guildID)
	if err != nil {
		return false, err
	}
	if profile == nil {
		return false, nil
	}

	kept := profile.XPBoosters[:0]
	removed := false
	for _, b := range profile.XPBoosters {
		if b.Name == name {
			removed = true
			continue
		}
		kept = append(kept, b)
	}

	if !removed {
		return false, nil
	}

	err = datastore.UpdateProfileBoosters(ctx, service.postgresDB, profile.ID, kept)
	if err != nil {
		return false, err
	}

	return true, service.ClearProfileCache(ctx, userID, guildID)
}

func (service *ServiceProfile) ListActiveBoosters(ctx context.Context, userID, guildID string) ([]models.Booster, error) {
	profile, err := service.FindProfile(ctx, userID, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile.ActiveBoosters(time.Now()), nil
}

// PruneExpiredBoosters drops dead entries from the stored list. The
// multiplier computation never writes; this explicit maintenance command is
// invoked after awards and by the nightly sweep.
func (service *ServiceProfile) PruneExpiredBoosters(ctx context.Context, userID, guildID string) (int, error) {
	profile, err := service.FindProfileNoCache(ctx, userID, guildID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, nil
	}

	now := time.Now()
	kept := profile.XPBoosters[:0]
	for _, b := range profile.XPBoosters {
		if b.Active(now) {
			kept = append(kept, b)
		}
	}

	pruned := len(profile.XPBoosters) - len(kept)
	if pruned == 0 {
		return 0, nil
	}

	err = datastore.UpdateProfileBoosters(ctx, service.postgresDB, profile.ID, kept)
	if err != nil {
		return 0, err
	}

	return pruned, service.ClearProfileCache(ctx, userID, guildID)
}

// SweepExpiredBoosters prunes every profile that still carries boosters.
// Invoked by the nightly cron.
func (service *ServiceProfile) SweepExpiredBoosters(ctx context.Context) (int, error) {
	profiles, err := datastore.ListProfilesWithBoosters(ctx, service.postgresDB)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, profile := range profiles {
		pruned, err := service.PruneExpiredBoosters(ctx, profile.UserID, profile.GuildID)
		if err != nil {
			log.Println("booster sweep:", profile.UserID, profile.GuildID, err)
			continue
		}
		total += pruned
	}

	log.Println("SweepExpiredBoosters:", "pruned:", total)
	return total, nil
}

// ResetPeriodicCounters zeroes the rolling XP counter for the given period.
// Invoked by the cron runner at day/week/month boundaries.
func (service *ServiceProfile) ResetPeriodicCounters(ctx context.Context, period string) (int64, error) {
	var column string
	switch period {
	case "daily":
		column = "daily_xp"
	case "weekly":
		column = "weekly_xp"
	case "monthly":
		column = "monthly_xp"
	default:
		return 0, errors.New("unknown period: " + period)
	}

	rows, err := datastore.ResetPeriodicXP(ctx, service.postgresDB, column)
	if err != nil {
		return 0, err
	}

	log.Println("ResetPeriodicCounters:", "period:", period, "profiles:", rows)
	return rows, nil
}

func (service *ServiceProfile) ClearProfileCache(ctx context.Context, userID, guildID string) error {
	err := service.cache.Delete(ctx, DBKeyProfile(userID, guildID))
	if err != nil {
		log.Println(err)
	}

	err = service.cache.Delete(ctx, DBKeyUnlockedAchievements(userID, guildID))
	if err != nil {
		log.Println(err)
	}

	return nil
}
