package datastore

import (
	"context"

	"github.com/uptrace/bun"

	"phasbot/internal/models"
)

func CreateTableGuildConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GuildConfig)(nil)).IfNotExists().Exec(ctx)
	return err
}

func GetGuildConfig(ctx context.Context, db *bun.DB, guildID string) (*models.GuildConfig, error) {
	var config models.GuildConfig
	err := db.NewSelect().Model(&config).Where("guild_id = ?", guildID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func UpsertGuildConfig(ctx context.Context, db *bun.DB, config *models.GuildConfig) error {
	_, err := db.NewInsert().Model(config).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("welcome_enabled = EXCLUDED.welcome_enabled").
		Set("welcome_channel_id = EXCLUDED.welcome_channel_id").
		Set("welcome_template = EXCLUDED.welcome_template").
		Set("farewell_enabled = EXCLUDED.farewell_enabled").
		Set("farewell_channel_id = EXCLUDED.farewell_channel_id").
		Set("farewell_template = EXCLUDED.farewell_template").
		Set("xp_cooldown_seconds = EXCLUDED.xp_cooldown_seconds").
		Set("level_roles = EXCLUDED.level_roles").
		Set("announce_channel_id = EXCLUDED.announce_channel_id").
		Exec(ctx)
	return err
}
