package datastore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"phasbot/internal/models"
)

func TestUserAchievementInsertConflictDoesNothing(t *testing.T) {
	db := renderDB()
	row := &models.UserAchievement{
		UserID:        "u1",
		GuildID:       "g1",
		AchievementID: "first-hunt",
		UnlockedAt:    time.Now(),
	}

	query := userAchievementInsert(db, row).String()

	// the unique triple decides the winner; the loser's insert is a no-op
	// rather than an error, so rows-affected cleanly reports who won
	assert.Contains(t, query, "ON CONFLICT (user_id, guild_id, achievement_id) DO NOTHING")
}
