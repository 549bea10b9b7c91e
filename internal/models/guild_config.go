package models

import (
	"github.com/uptrace/bun"
)

// GuildConfig holds per-guild settings: greeting templates, XP cooldown and
// level-threshold role rewards. One row per guild, created on first write.
type GuildConfig struct {
	bun.BaseModel `bun:"table:guild_config"`
	GuildID       string `bun:"guild_id,pk" json:"guild_id"`

	WelcomeEnabled   bool   `bun:"welcome_enabled" json:"welcome_enabled"`
	WelcomeChannelID string `bun:"welcome_channel_id" json:"welcome_channel_id"`
	WelcomeTemplate  string `bun:"welcome_template" json:"welcome_template"`

	FarewellEnabled   bool   `bun:"farewell_enabled" json:"farewell_enabled"`
	FarewellChannelID string `bun:"farewell_channel_id" json:"farewell_channel_id"`
	FarewellTemplate  string `bun:"farewell_template" json:"farewell_template"`

	XPCooldownSeconds int `bun:"xp_cooldown_seconds" json:"xp_cooldown_seconds"`

	// level (stringified, jsonb keys are strings) -> role id granted at that level
	LevelRoles map[string]string `bun:"level_roles,type:jsonb" json:"level_roles"`

	AnnounceChannelID string `bun:"announce_channel_id" json:"announce_channel_id"`
}
