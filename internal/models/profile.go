package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Profile is the per-user-per-guild progression and economy record. The
// (user_id, guild_id) pair is unique and immutable after creation.
type Profile struct {
	bun.BaseModel `bun:"table:profile"`
	ID            int64  `bun:"id,pk,autoincrement" json:"id"`
	UserID        string `bun:"user_id,notnull" json:"user_id"`
	GuildID       string `bun:"guild_id,notnull" json:"guild_id"`

	XP         int64 `bun:"xp" json:"xp"`
	Level      int   `bun:"level" json:"level"`
	Prestige   int   `bun:"prestige" json:"prestige"`
	PrestigeXP int64 `bun:"prestige_xp" json:"prestige_xp"`

	MessageCount   int64 `bun:"message_count" json:"message_count"`
	MessageStreak  int   `bun:"message_streak" json:"message_streak"`
	LastMessageDay int   `bun:"last_message_day" json:"-"` // epoch day, UTC
	DailyXP        int64 `bun:"daily_xp" json:"daily_xp"`
	WeeklyXP       int64 `bun:"weekly_xp" json:"weekly_xp"`
	MonthlyXP      int64 `bun:"monthly_xp" json:"monthly_xp"`

	Balance       int64 `bun:"balance" json:"balance"`
	TotalEarnings int64 `bun:"total_earnings" json:"total_earnings"`
	MoneySpent    int64 `bun:"money_spent" json:"money_spent"`

	XPBoosters   []Booster  `bun:"xp_boosters,type:jsonb" json:"xp_boosters"`
	PremiumUntil *time.Time `bun:"premium_until" json:"premium_until"`

	Achievements      []string `bun:"achievements,type:jsonb" json:"achievements"`
	AchievementPoints int      `bun:"achievement_points" json:"achievement_points"`

	CompletedChallenges int      `bun:"completed_challenges" json:"completed_challenges"`
	ActiveChallenges    []string `bun:"active_challenges,type:jsonb" json:"active_challenges"`

	Inventory map[string]int `bun:"inventory,type:jsonb" json:"inventory"`
	Titles    []string       `bun:"titles,type:jsonb" json:"titles"`

	// investigation stats fed by the game-event ingest, read by achievement
	// and challenge requirements
	TotalInvestigations      int `bun:"total_investigations" json:"total_investigations"`
	SuccessfulInvestigations int `bun:"successful_investigations" json:"successful_investigations"`
	TotalHunts               int `bun:"total_hunts" json:"total_hunts"`
	SuccessfulHunts          int `bun:"successful_hunts" json:"successful_hunts"`
	HuntStreak               int `bun:"hunt_streak" json:"hunt_streak"`
	NightmareHunts           int `bun:"nightmare_hunts" json:"nightmare_hunts"`
	ItemsUsed                int `bun:"items_used" json:"items_used"`
	PhotosTaken              int `bun:"photos_taken" json:"photos_taken"`
	GhostsExorcised          int `bun:"ghosts_exorcised" json:"ghosts_exorcised"`
	Sanity                   int `bun:"sanity" json:"sanity"`

	CreatedAt time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at" json:"updated_at"`
}

// Booster is a time-boxed multiplicative XP bonus attached to a profile.
type Booster struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Multiplier  float64   `json:"multiplier"`
	ExpiresAt   time.Time `json:"expires_at"`
	AddedAt     time.Time `json:"added_at"`
}

func (b Booster) Active(now time.Time) bool {
	return b.ExpiresAt.After(now)
}

// ActiveBoosters filters out expired entries without mutating the profile.
func (p *Profile) ActiveBoosters(now time.Time) []Booster {
	var active []Booster
	for _, b := range p.XPBoosters {
		if b.Active(now) {
			active = append(active, b)
		}
	}
	return active
}

func (p *Profile) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a == id {
			return true
		}
	}
	return false
}

func (p *Profile) HasTitle(title string) bool {
	for _, t := range p.Titles {
		if t == title {
			return true
		}
	}
	return false
}

func (p *Profile) IsPremium(now time.Time) bool {
	return p.PremiumUntil != nil && p.PremiumUntil.After(now)
}

// AccountAgeDays is the whole number of days since the profile was created.
func (p *Profile) AccountAgeDays(now time.Time) int {
	if p.CreatedAt.IsZero() || p.CreatedAt.After(now) {
		return 0
	}
	return int(now.Sub(p.CreatedAt).Hours() / 24)
}
