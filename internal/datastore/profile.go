package datastore

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"phasbot/internal/models"
)

func CreateTableProfile(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Profile)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// the pair is the real identity; everything keys off it
	_, err = db.NewCreateIndex().Model((*models.Profile)(nil)).
		Index("index_profile_user_guild").Unique().IfNotExists().
		Column("user_id", "guild_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Profile)(nil)).
		Index("index_profile_guild_xp").IfNotExists().
		Column("guild_id", "xp").Exec(ctx)
	return err
}

func FindProfile(ctx context.Context, db *bun.DB, userID, guildID string) (*models.Profile, error) {
	var profile models.Profile
	err := db.NewSelect().Model(&profile).
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func CreateProfile(ctx context.Context, db *bun.DB, profile *models.Profile) (*models.Profile, error) {
	// two racing first-messages may both attempt the insert; the unique index
	// turns the loser into a no-op and the follow-up select returns the winner
	res, err := db.NewInsert().Model(profile).
		On("CONFLICT (user_id, guild_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return FindProfile(ctx, db, profile.UserID, profile.GuildID)
	}

	return profile, nil
}

func SaveProfile(ctx context.Context, db bun.IDB, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	_, err := db.NewUpdate().Model(profile).WherePK().Exec(ctx)
	return err
}

// AwardMessageXP applies one message's worth of progress in a single
// increment-style update keyed by (user, guild), so two racing messages from
// the same user cannot lose each other's XP. The updated row is returned.
func AwardMessageXP(ctx context.Context, db bun.IDB, userID, guildID string, xpGained int64, streak int, lastMessageDay int) (*models.Profile, error) {
	var profile models.Profile
	_, err := db.NewUpdate().Model(&profile).
		Set("xp = xp + ?", xpGained).
		Set("daily_xp = daily_xp + ?", xpGained).
		Set("weekly_xp = weekly_xp + ?", xpGained).
		Set("monthly_xp = monthly_xp + ?", xpGained).
		Set("message_count = message_count + 1").
		Set("message_streak = ?", streak).
		Set("last_message_day = ?", lastMessageDay).
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetProfileLevel writes the level derived from an authoritative XP value.
func SetProfileLevel(ctx context.Context, db bun.IDB, profileID int64, level int) error {
	_, err := db.NewUpdate().Model((*models.Profile)(nil)).
		Set("level = ?", level).
		Where("id = ?", profileID).
		Exec(ctx)
	return err
}

// UpdateProfileBoosters replaces the booster list only.
func UpdateProfileBoosters(ctx context.Context, db *bun.DB, profileID int64, boosters []models.Booster) error {
	_, err := db.NewUpdate().Model((*models.Profile)(nil)).
		Set("xp_boosters = ?", boosters).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", profileID).
		Exec(ctx)
	return err
}

// LockProfile reads the row FOR UPDATE inside a transaction.
func LockProfile(ctx context.Context, tx bun.Tx, userID, guildID string) (*models.Profile, error) {
	var profile models.Profile
	err := tx.NewSelect().Model(&profile).
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ResetPeriodicXP zeroes one rolling counter across all profiles.
func ResetPeriodicXP(ctx context.Context, db *bun.DB, column string) (int64, error) {
	res, err := db.NewUpdate().Model((*models.Profile)(nil)).
		Set(column+" = 0").
		Where(column+" <> 0").
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func GetTopProfilesByXP(ctx context.Context, db *bun.DB, guildID string, limit int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := db.NewSelect().Model(&profiles).
		Where("guild_id = ?", guildID).
		Order("xp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func GetTopProfilesByPrestige(ctx context.Context, db *bun.DB, guildID string, limit int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := db.NewSelect().Model(&profiles).
		Where("guild_id = ?", guildID).
		Where("prestige > 0 OR prestige_xp > 0").
		Order("prestige DESC").
		Order("prestige_xp DESC").
		Order("xp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func GetProfilesByGuildPaging(ctx context.Context, db *bun.DB, guildID string, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := db.NewSelect().Model(&profiles).
		Where("guild_id = ?", guildID).
		Order("xp DESC").
		Limit(limit).
		Offset(offset).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListProfilesWithBoosters feeds the nightly booster prune sweep.
func ListProfilesWithBoosters(ctx context.Context, db *bun.DB) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := db.NewSelect().Model(&profiles).
		Where("xp_boosters IS NOT NULL").
		Where("jsonb_array_length(xp_boosters) > 0").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListGuildIDs returns every guild that has at least one profile.
func ListGuildIDs(ctx context.Context, db *bun.DB) ([]string, error) {
	var ids []string
	err := db.NewSelect().Model((*models.Profile)(nil)).
		ColumnExpr("DISTINCT guild_id").
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func CountProfiles(ctx context.Context, db *bun.DB, guildID string) (int, error) {
	return db.NewSelect().Model((*models.Profile)(nil)).
		Where("guild_id = ?", guildID).
		Count(ctx)
}
