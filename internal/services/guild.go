package services

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/models"
	"phasbot/internal/pkg/caching"
)

type ServiceGuild struct {
	container          *do.Injector
	postgresDB         *bun.DB
	readonlyPostgresDB *bun.DB
	cache              caching.Cache
	readonlyCache      caching.ReadOnlyCache
}

func NewServiceGuild(container *do.Injector) (*ServiceGuild, error) {
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

	return &ServiceGuild{container, postgresDB, readonlyPostgresDB, cache, readonlyCache}, nil
}

// GetConfig returns the guild's settings, falling back to defaults when no
// row exists yet.
func (service *ServiceGuild) GetConfig(ctx context.Context, guildID string) (*models.GuildConfig, error) {
	callback := func() (*models.GuildConfig, error) {
		config, err := datastore.GetGuildConfig(ctx, service.readonlyPostgresDB, guildID)
		if errors.Is(err, sql.ErrNoRows) {
			return defaultGuildConfig(guildID), nil
		}
		return config, err
	}
	return caching.UseCacheWithRO(ctx, service.readonlyCache, service.cache, DBKeyGuildConfig(guildID), CACHE_TTL_5_MINS, callback)
}

func (service *ServiceGuild) SaveConfig(ctx context.Context, config *models.GuildConfig) error {
	if config.GuildID == "" {
		return errors.New("guild id is required")
	}
	if config.XPCooldownSeconds < 0 {
		return errors.New("cooldown cannot be negative")
	}

	if err := datastore.UpsertGuildConfig(ctx, service.postgresDB, config); err != nil {
		return err
	}

	if err := service.cache.Delete(ctx, DBKeyGuildConfig(config.GuildID)); err != nil {
		log.Println(err)
	}
	return nil
}

func defaultGuildConfig(guildID string) *models.GuildConfig {
	return &models.GuildConfig{
		GuildID:           guildID,
		WelcomeTemplate:   "Welcome to {guild}, {user}! You are investigator #{memberCount}.",
		FarewellTemplate:  "{user} has left the investigation. {memberCount} hunters remain.",
		XPCooldownSeconds: DEFAULT_XP_COOLDOWN_SECONDS,
	}
}
