package datastore

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"phasbot/internal/models"
)

func CreateTableChallenge(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Challenge)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Challenge)(nil)).
		Index("index_challenge_window").IfNotExists().
		Column("type", "end_date").Exec(ctx)
	return err
}

func CreateTableUserChallenge(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.UserChallenge)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.UserChallenge)(nil)).
		Index("index_user_challenge_triple").Unique().IfNotExists().
		Column("user_id", "guild_id", "challenge_id").Exec(ctx)
	return err
}

func ListEnabledChallenges(ctx context.Context, db *bun.DB) ([]*models.Challenge, error) {
	var challenges []*models.Challenge
	err := db.NewSelect().Model(&challenges).
		Where("enabled = ?", true).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return challenges, nil
}

// UpsertChallenge inserts an instance by its deterministic id, so a
// regeneration job that dies partway is safe to re-run.
func UpsertChallenge(ctx context.Context, db *bun.DB, challenge *models.Challenge) error {
	_, err := db.NewInsert().Model(challenge).
		On("CONFLICT (id) DO UPDATE").
		Set("title = EXCLUDED.title").
		Set("description = EXCLUDED.description").
		Set("requirements = EXCLUDED.requirements").
		Set("rewards = EXCLUDED.rewards").
		Set("start_date = EXCLUDED.start_date").
		Set("end_date = EXCLUDED.end_date").
		Set("enabled = EXCLUDED.enabled").
		Exec(ctx)
	return err
}

// DeleteExpiredChallenges removes finished instances of one period type.
func DeleteExpiredChallenges(ctx context.Context, db *bun.DB, challengeType models.ChallengeType, before time.Time) (int64, error) {
	res, err := db.NewDelete().Model((*models.Challenge)(nil)).
		Where("type = ?", challengeType).
		Where("end_date <= ?", before).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func GetUserChallenge(ctx context.Context, db *bun.DB, userID, guildID, challengeID string) (*models.UserChallenge, error) {
	var row models.UserChallenge
	err := db.NewSelect().Model(&row).
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		Where("challenge_id = ?", challengeID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func GetUserChallenges(ctx context.Context, db *bun.DB, userID, guildID string) ([]*models.UserChallenge, error) {
	var rows []*models.UserChallenge
	err := db.NewSelect().Model(&rows).
		Where("user_id = ?", userID).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertUserChallengeIfAbsent lazily creates the progress row. Same
// conflict-as-success contract as the achievement join table.
func InsertUserChallengeIfAbsent(ctx context.Context, db *bun.DB, row *models.UserChallenge) (bool, error) {
	now := time.Now()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	row.UpdatedAt = now

	res, err := db.NewInsert().Model(row).
		On("CONFLICT (user_id, guild_id, challenge_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

// SaveUserChallenge persists accumulated progress only. Completion state is
// owned by MarkUserChallengeCompleted; writing it from an in-memory snapshot
// could un-complete a row a racing call just completed and re-arm its guard.
func SaveUserChallenge(ctx context.Context, db *bun.DB, row *models.UserChallenge) error {
	row.UpdatedAt = time.Now()
	_, err := userChallengeProgressUpdate(db, row).Exec(ctx)
	return err
}

func userChallengeProgressUpdate(db bun.IDB, row *models.UserChallenge) *bun.UpdateQuery {
	return db.NewUpdate().Model(row).
		Column("progress", "updated_at").
		WherePK()
}

// MarkUserChallengeCompleted flips the completed flag exactly once. The
// guarded WHERE means a racing call observes zero rows affected and must not
// apply rewards.
func MarkUserChallengeCompleted(ctx context.Context, db *bun.DB, rowID int64, completedAt time.Time) (bool, error) {
	res, err := db.NewUpdate().Model((*models.UserChallenge)(nil)).
		Set("completed = ?", true).
		Set("completed_at = ?", completedAt).
		Set("completion_count = completion_count + 1").
		Set("updated_at = ?", completedAt).
		Where("id = ?", rowID).
		Where("completed = ?", false).
		Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func IncrementChallengeCompletedBy(ctx context.Context, db *bun.DB, challengeID string) error {
	_, err := db.NewUpdate().Model((*models.Challenge)(nil)).
		Set("completed_by = completed_by + 1").
		Where("id = ?", challengeID).
		Exec(ctx)
	return err
}

func DeleteUserChallengesFor(ctx context.Context, db *bun.DB, challengeIDs []string) (int64, error) {
	if len(challengeIDs) == 0 {
		return 0, nil
	}
	res, err := db.NewDelete().Model((*models.UserChallenge)(nil)).
		Where("challenge_id IN (?)", bun.In(challengeIDs)).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func ListExpiredChallengeIDs(ctx context.Context, db *bun.DB, challengeType models.ChallengeType, before time.Time) ([]string, error) {
	var ids []string
	err := db.NewSelect().Model((*models.Challenge)(nil)).
		Column("id").
		Where("type = ?", challengeType).
		Where("end_date <= ?", before).
		Scan(ctx, &ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}
