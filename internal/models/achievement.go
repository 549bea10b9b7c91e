package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Achievement is a catalog definition. Rows are administered out-of-band and
// loaded into an in-memory snapshot; they are immutable at evaluation time.
type Achievement struct {
	bun.BaseModel `bun:"table:achievement"`
	ID            string                  `bun:"id,pk" json:"id"`
	Name          string                  `bun:"name" json:"name"`
	Description   string                  `bun:"description" json:"description"`
	Category      string                  `bun:"category" json:"category"`
	Requirements  AchievementRequirements `bun:"requirements,type:jsonb" json:"requirements"`
	Rewards       Rewards                 `bun:"rewards,type:jsonb" json:"rewards"`
	Rarity        Rarity                  `bun:"rarity" json:"rarity"`
	Points        int                     `bun:"points" json:"points"`
	GuildID       *string                 `bun:"guild_id" json:"guild_id"` // nil = global
	Enabled       bool                    `bun:"enabled" json:"-"`
	UnlockedBy    int64                   `bun:"unlocked_by" json:"unlocked_by"`
}

/// AchievementRequirements is a sparse bag: only non-nil thresholds are
// evaluated, each as profile[field] >= threshold. CustomCondition names a
// predicate from the closed registry in the achievement service.
type AchievementRequirements struct {
	Level                    *int   `json:"level,omitempty"`
	TotalXP                  *int64 `json:"total_xp,omitempty"`
	MessageCount             *int64 `json:"message_count,omitempty"`
	MessageStreak            *int   `json:"message_streak,omitempty"`
	Balance                  *int64 `json:"balance,omitempty"`
	TotalEarnings            *int64 `json:"total_earnings,omitempty"`
	MoneySpent               *int64 `json:"money_spent,omitempty"`
	TotalInvestigations      *int   `json:"total_investigations,omitempty"`
	SuccessfulInvestigations *int   `json:"successful_investigations,omitempty"`
	TotalHunts               *int   `json:"total_hunts,omitempty"`
	SuccessfulHunts          *int   `json:"successful_hunts,omitempty"`
	HuntStreak               *int   `json:"hunt_streak,omitempty"`
	NightmareHunts           *int   `json:"nightmare_hunts,omitempty"`
	ItemsUsed                *int   `json:"items_used,omitempty"`
	PhotosTaken              *int   `json:"photos_taken,omitempty"`
	GhostsExorcised          *int   `json:"ghosts_exorcised,omitempty"`
	AccountAgeDays           *int   `json:"account_age_days,omitempty"`
	CustomCondition          string `json:"custom_condition,omitempty"`
}

// Rewards is the bundle applied when an achievement unlocks or a challenge
// completes.
type Rewards struct {
	XP        int64          `json:"xp,omitempty"`
	Money     int64          `json:"money,omitempty"`
	Items     map[string]int `json:"items,omitempty"`
	Title     string         `json:"title,omitempty"`
	XPBooster *BoosterGrant  `json:"xp_booster,omitempty"`
}

// BoosterGrant describes a timed booster to append on reward application.
type BoosterGrant struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Multiplier      float64 `json:"multiplier"`
	DurationMinutes int     `json:"duration_minutes"`
}

// UserAchievement records an unlock. The unique index on
// (user_id, guild_id, achievement_id) is the source of truth for "already
// unlocked"; insertion is conflict-as-success.
type UserAchievement struct {
	bun.BaseModel `bun:"table:user_achievement"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID        string    `bun:"user_id,notnull" json:"user_id"`
	GuildID       string    `bun:"guild_id,notnull" json:"guild_id"`
	AchievementID string    `bun:"achievement_id,notnull" json:"achievement_id"`
	UnlockedAt    time.Time `bun:"unlocked_at,notnull" json:"unlocked_at"`
	Progress      float64   `bun:"progress" json:"progress"`
}

// AchievementWithStatus decorates a catalog entry with per-user state for the
// read API.
type AchievementWithStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}
