package models

import "time"

// MessageEvent is what the gateway delivers for every qualifying chat message.
type MessageEvent struct {
	UserID        string    `json:"user_id"`
	GuildID       string    `json:"guild_id"`
	Username      string    `json:"username"`
	MessageLength int       `json:"message_length"`
	SentAt        time.Time `json:"sent_at"`
}

// ActionEvent reports a discrete game action from the command dispatcher:
// investigations, hunts, economy moves. Amount defaults to 1. Stats carries
// optional extra counter deltas (itemsUsed, photosTaken, ghostsExorcised)
// and the current sanity reading.
type ActionEvent struct {
	UserID     string         `json:"user_id"`
	GuildID    string         `json:"guild_id"`
	Action     string         `json:"action"`
	Amount     int64          `json:"amount"`
	Success    bool           `json:"success"`
	Difficulty string         `json:"difficulty,omitempty"`
	Stats      map[string]int `json:"stats,omitempty"`
	SentAt     time.Time      `json:"sent_at"`
}

// MemberEvent is delivered on guild member join/leave.
type MemberEvent struct {
	UserID      string `json:"user_id"`
	GuildID     string `json:"guild_id"`
	Username    string `json:"username"`
	GuildName   string `json:"guild_name"`
	MemberCount int    `json:"member_count"`
}

// Notification payloads. The presentation layer renders these; the core only
// produces plain data.

type LevelUpEvent struct {
	UserID       string   `json:"user_id"`
	GuildID      string   `json:"guild_id"`
	OldLevel     int      `json:"old_level"`
	NewLevel     int      `json:"new_level"`
	XPGained     int64    `json:"xp_gained"`
	RoleRewards  []string `json:"role_rewards,omitempty"`
	AnnounceInID string   `json:"announce_in_id,omitempty"`
}

type AchievementUnlockedEvent struct {
	UserID      string       `json:"user_id"`
	GuildID     string       `json:"guild_id"`
	Achievement *Achievement `json:"achievement"`
}

type ChallengeCompletedEvent struct {
	UserID    string     `json:"user_id"`
	GuildID   string     `json:"guild_id"`
	Challenge *Challenge `json:"challenge"`
}

type GreetingEvent struct {
	GuildID   string `json:"guild_id"`
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
}
