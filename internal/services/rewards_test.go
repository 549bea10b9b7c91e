package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phasbot/internal/models"
	"phasbot/internal/pkg"
)

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	today := pkg.EpochDay(now)

	// same day keeps the streak
	assert.Equal(t, 5, NextStreak(&models.Profile{MessageStreak: 5, LastMessageDay: today}, now))

	// yesterday extends
	assert.Equal(t, 6, NextStreak(&models.Profile{MessageStreak: 5, LastMessageDay: today - 1}, now))

	// any gap resets
	assert.Equal(t, 1, NextStreak(&models.Profile{MessageStreak: 5, LastMessageDay: today - 2}, now))
	assert.Equal(t, 1, NextStreak(&models.Profile{MessageStreak: 30, LastMessageDay: today - 100}, now))

	// brand-new profile starts at 1
	assert.Equal(t, 1, NextStreak(&models.Profile{}, now))
}

func TestApplyRewardsXPAndMoney(t *testing.T) {
	profile := &models.Profile{XP: 100, Balance: 50, TotalEarnings: 50}
	now := time.Now()

	ApplyRewards(profile, models.Rewards{XP: 40, Money: 25}, now)

	assert.Equal(t, int64(140), profile.XP)
	assert.Equal(t, int64(40), profile.DailyXP)
	assert.Equal(t, int64(40), profile.WeeklyXP)
	assert.Equal(t, int64(40), profile.MonthlyXP)
	assert.Equal(t, int64(75), profile.Balance)
	assert.Equal(t, int64(75), profile.TotalEarnings)
}

func TestApplyRewardsItemsAndTitle(t *testing.T) {
	profile := &models.Profile{Inventory: map[string]int{"emf_reader": 1}}
	now := time.Now()

	ApplyRewards(profile, models.Rewards{
		Items: map[string]int{"emf_reader": 2, "crucifix": 1},
		Title: "Ghost Hunter",
	}, now)

	assert.Equal(t, 3, profile.Inventory["emf_reader"])
	assert.Equal(t, 1, profile.Inventory["crucifix"])
	assert.True(t, profile.HasTitle("Ghost Hunter"))

	// reapplying the same title does not duplicate
	ApplyRewards(profile, models.Rewards{Title: "Ghost Hunter"}, now)
	assert.Len(t, profile.Titles, 1)
}

func TestApplyRewardsBoosterGrant(t *testing.T) {
	profile := &models.Profile{}
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	grant := &models.BoosterGrant{Name: "Spirit Rush", Multiplier: 1.5, DurationMinutes: 60}
	ApplyRewards(profile, models.Rewards{XPBooster: grant}, now)

	require.Len(t, profile.XPBoosters, 1)
	assert.Equal(t, "Spirit Rush", profile.XPBoosters[0].Name)
	assert.Equal(t, now.Add(time.Hour), profile.XPBoosters[0].ExpiresAt)

	// same-name grant refreshes instead of stacking
	later := now.Add(30 * time.Minute)
	ApplyRewards(profile, models.Rewards{XPBooster: grant}, later)
	require.Len(t, profile.XPBoosters, 1)
	assert.Equal(t, later.Add(time.Hour), profile.XPBoosters[0].ExpiresAt)
}

func TestApplyRewardsEmptyBundle(t *testing.T) {
	profile := &models.Profile{XP: 10}
	ApplyRewards(profile, models.Rewards{}, time.Now())
	assert.Equal(t, int64(10), profile.XP)
	assert.Empty(t, profile.XPBoosters)
	assert.Empty(t, profile.Titles)
}
