package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"phasbot/internal/models"
)

func TestApplyActionStatsEconomy(t *testing.T) {
	profile := &models.Profile{Balance: 500}

	changed := ApplyActionStats(profile, &models.ActionEvent{Action: "earnMoney"}, 300)
	assert.True(t, changed)
	assert.Equal(t, int64(800), profile.Balance)
	assert.Equal(t, int64(300), profile.TotalEarnings)

	changed = ApplyActionStats(profile, &models.ActionEvent{Action: "spendMoney"}, 1000)
	assert.True(t, changed)
	assert.Equal(t, int64(0), profile.Balance, "balance never goes negative")
	assert.Equal(t, int64(1000), profile.MoneySpent)
}

func TestApplyActionStatsHunts(t *testing.T) {
	profile := &models.Profile{HuntStreak: 4}

	ApplyActionStats(profile, &models.ActionEvent{Action: "completeHunt", Success: true, Difficulty: "nightmare"}, 1)
	assert.Equal(t, 1, profile.TotalHunts)
	assert.Equal(t, 1, profile.SuccessfulHunts)
	assert.Equal(t, 5, profile.HuntStreak)
	assert.Equal(t, 1, profile.NightmareHunts)

	ApplyActionStats(profile, &models.ActionEvent{Action: "completeHunt", Success: false}, 1)
	assert.Equal(t, 2, profile.TotalHunts)
	assert.Equal(t, 1, profile.SuccessfulHunts)
	assert.Equal(t, 0, profile.HuntStreak, "a failed hunt resets the streak")
	assert.Equal(t, 1, profile.NightmareHunts)
}

func TestApplyActionStatsInvestigations(t *testing.T) {
	profile := &models.Profile{}

	ApplyActionStats(profile, &models.ActionEvent{Action: "completeInvestigation", Success: true}, 1)
	ApplyActionStats(profile, &models.ActionEvent{Action: "completeInvestigation"}, 1)
	assert.Equal(t, 2, profile.TotalInvestigations)
	assert.Equal(t, 1, profile.SuccessfulInvestigations)
}

func TestApplyActionStatsExtraCounters(t *testing.T) {
	profile := &models.Profile{Sanity: 80}

	changed := ApplyActionStats(profile, &models.ActionEvent{
		Action: "findItem",
		Stats:  map[string]int{"itemsUsed": 2, "photosTaken": 1, "ghostsExorcised": 1, "sanity": 130, "bogus": 9},
	}, 1)
	assert.True(t, changed)
	assert.Equal(t, 2, profile.ItemsUsed)
	assert.Equal(t, 1, profile.PhotosTaken)
	assert.Equal(t, 1, profile.GhostsExorcised)
	assert.Equal(t, 100, profile.Sanity, "sanity is an absolute reading clamped to 0..100")
}

func TestApplyActionStatsChallengeOnlyAction(t *testing.T) {
	profile := &models.Profile{}
	changed := ApplyActionStats(profile, &models.ActionEvent{Action: "useCommand"}, 1)
	assert.False(t, changed)
	assert.Equal(t, &models.Profile{}, profile)
}
