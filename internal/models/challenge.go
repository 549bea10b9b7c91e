package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ChallengeType string

const (
	ChallengeDaily   ChallengeType = "daily"
	ChallengeWeekly  ChallengeType = "weekly"
	ChallengeMonthly ChallengeType = "monthly"
	ChallengeSpecial ChallengeType = "special"
	ChallengeEvent   ChallengeType = "event"
)

// Challenge action vocabulary. Every trackable act a user performs maps to at
// most one requirement field per challenge.
type ChallengeAction string

const (
	ActionSendMessage           ChallengeAction = "sendMessage"
	ActionGainXP                ChallengeAction = "gainXp"
	ActionEarnMoney             ChallengeAction = "earnMoney"
	ActionSpendMoney            ChallengeAction = "spendMoney"
	ActionCompleteInvestigation ChallengeAction = "completeInvestigation"
	ActionCompleteHunt          ChallengeAction = "completeHunt"
	ActionFindItem              ChallengeAction = "findItem"
	ActionIdentifyGhost         ChallengeAction = "identifyGhost"
	ActionUseCommand            ChallengeAction = "useCommand"
	ActionBeActive              ChallengeAction = "beActive"
)

// ActionRequirementKeys maps an action to the requirement field it advances.
// Challenges whose requirement bag lacks the field ignore the action.
var ActionRequirementKeys = map[ChallengeAction]string{
	ActionSendMessage:           "sendMessages",
	ActionGainXP:                "gainXp",
	ActionEarnMoney:             "earnMoney",
	ActionSpendMoney:            "spendMoney",
	ActionCompleteInvestigation: "completeInvestigations",
	ActionCompleteHunt:          "completeHunts",
	ActionFindItem:              "findItems",
	ActionIdentifyGhost:         "identifyGhosts",
	ActionUseCommand:            "useCommands",
	ActionBeActive:              "activeDays",
}

// Challenge is a time-windowed objective instance. IDs are deterministic per
// template and period so regeneration jobs upsert idempotently.
type Challenge struct {
	bun.BaseModel  `bun:"table:challenge"`
	ID             string           `bun:"id,pk" json:"id"`
	Title          string           `bun:"title" json:"title"`
	Description    string           `bun:"description" json:"description"`
	Type           ChallengeType    `bun:"type" json:"type"`
	Requirements   map[string]int64 `bun:"requirements,type:jsonb" json:"requirements"`
	Rewards        Rewards          `bun:"rewards,type:jsonb" json:"rewards"`
	GuildID        *string          `bun:"guild_id" json:"guild_id"` // nil = global
	StartDate      time.Time        `bun:"start_date,notnull" json:"start_date"`
	EndDate        time.Time        `bun:"end_date,notnull" json:"end_date"`
	MaxCompletions int              `bun:"max_completions" json:"max_completions"`
	Enabled        bool             `bun:"enabled" json:"-"`
	CompletedBy    int64            `bun:"completed_by" json:"completed_by"`
}

// ActiveAt reports whether the challenge accepts progress at t for the guild.
func (c *Challenge) ActiveAt(t time.Time, guildID string) bool {
	if !c.Enabled {
		return false
	}
	if c.GuildID != nil && *c.GuildID != guildID {
		return false
	}
	return !c.StartDate.After(t) && t.Before(c.EndDate)
}

// UserChallenge tracks one user's progress against one challenge instance.
// Unique on (user_id, guild_id, challenge_id). Progress only increases;
// rewards fire exactly once when Completed flips.
type UserChallenge struct {
	bun.BaseModel   `bun:"table:user_challenge"`
	ID              int64            `bun:"id,pk,autoincrement" json:"id"`
	UserID          string           `bun:"user_id,notnull" json:"user_id"`
	GuildID         string           `bun:"guild_id,notnull" json:"guild_id"`
	ChallengeID     string           `bun:"challenge_id,notnull" json:"challenge_id"`
	Progress        map[string]int64 `bun:"progress,type:jsonb" json:"progress"`
	Completed       bool             `bun:"completed,notnull,default:false" json:"completed"`
	CompletedAt     *time.Time       `bun:"completed_at" json:"completed_at"`
	CompletionCount int              `bun:"completion_count" json:"completion_count"`
	CreatedAt       time.Time        `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time        `bun:"updated_at" json:"updated_at"`
}

// MetAllRequirements reports whether every requirement threshold is reached.
func (uc *UserChallenge) MetAllRequirements(c *Challenge) bool {
	for key, threshold := range c.Requirements {
		if uc.Progress[key] < threshold {
			return false
		}
	}
	return len(c.Requirements) > 0
}

// ChallengeWithStatus decorates a challenge with per-user progress for the
// read API.
type ChallengeWithStatus struct {
	Challenge
	Progress    map[string]int64 `json:"user_progress"`
	Completed   bool             `json:"user_completed"`
	CompletedAt *time.Time       `json:"user_completed_at,omitempty"`
}
