package datastore

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"phasbot/internal/models"
)

func CreateTableAchievement(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Achievement)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Achievement)(nil)).
		Index("index_achievement_guild_id").IfNotExists().
		Column("guild_id").Exec(ctx)
	return err
}

func CreateTableUserAchievement(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserAchievement)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	// this unique index, not application logic, is what makes unlocking
	// exactly-once under racing evaluations
	_, err = db.NewCreateIndex().Model((*models.UserAchievement)(nil)).
		Index("index_user_achievement_triple").Unique().IfNotExists().
		Column("user_id", "guild_id", "achievement_id").Exec(ctx)
	return err
}

func ListEnabledAchievements(ctx context.Context, db *bun.DB) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	err := db.NewSelect().Model(&achievements).
		Where("enabled = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return achievements, nil
}

func UpsertAchievement(ctx context.Context, db *bun.DB, achievement *models.Achievement) error {
	_, err := db.NewInsert().Model(achievement).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("description = EXCLUDED.description").
		Set("category = EXCLUDED.category").
		Set("requirements = EXCLUDED.requirements").
		Set("rewards = EXCLUDED.rewards").
		Set("rarity = EXCLUDED.rarity").
		Set("points = EXCLUDED.points").
		Set("enabled = EXCLUDED.enabled").
		Exec(ctx)
	return err
}

func ListUnlockedAchievementIDs(ctx context.Context, db *bun.DB, userID, guildID string) ([]string, error) {
	var ids []string
	err := db.NewSelect().Model((*models.UserAchievement)(nil)).
		Column("achievement_id").
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func GetUserAchievements(ctx context.Context, db *bun.DB, userID, guildID string) ([]*models.UserAchievement, error) {
	var rows []*models.UserAchievement
	err := db.NewSelect().Model(&rows).
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		Order("unlocked_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertUserAchievementIfAbsent attempts the unlock insert. It returns true
// when this call created the row and false when someone beat us to it; both
// outcomes are success for the caller, only the winner applies rewards.
func InsertUserAchievementIfAbsent(ctx context.Context, db *bun.DB, row *models.UserAchievement) (bool, error) {
	if row.UnlockedAt.IsZero() {
		row.UnlockedAt = time.Now()
	}

	res, err := userAchievementInsert(db, row).Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func userAchievementInsert(db bun.IDB, row *models.UserAchievement) *bun.InsertQuery {
	return db.NewInsert().Model(row).
		On("CONFLICT (user_id, guild_id, achievement_id) DO NOTHING")
}

func IncrementAchievementUnlockedBy(ctx context.Context, db *bun.DB, achievementID string) error {
	_, err := db.NewUpdate().Model((*models.Achievement)(nil)).
		Set("unlocked_by = unlocked_by + 1").
		Where("id = ?", achievementID).
		Exec(ctx)
	return err
}
