package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phasbot/internal/models"
)

func TestApplyPrestigeTransformAtLevelCap(t *testing.T) {
	profile := &models.Profile{XP: 1_000_000}

	result := ApplyPrestigeTransform(profile)
	require.True(t, result.Success)

	assert.Equal(t, 0, result.OldPrestige)
	assert.Equal(t, 1, result.NewPrestige)
	assert.Equal(t, int64(200_000), result.PrestigeXPGain)
	assert.Equal(t, int64(100_000), result.NewXP)
	assert.Equal(t, 31, result.NewLevel)
	assert.Equal(t, int64(10_000), result.MoneyBonus)

	assert.Equal(t, 1, profile.Prestige)
	assert.Equal(t, int64(200_000), profile.PrestigeXP)
	assert.Equal(t, int64(100_000), profile.XP)
	assert.Equal(t, 31, profile.Level)
	assert.Equal(t, int64(10_000), profile.Balance)
	assert.Equal(t, int64(10_000), profile.TotalEarnings)
}

func TestApplyPrestigeTransformBelowThreshold(t *testing.T) {
	profile := &models.Profile{XP: 999_999, Prestige: 2}

	result := ApplyPrestigeTransform(profile)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Reason)
	assert.Equal(t, 2, result.OldPrestige)
	assert.Equal(t, 2, result.NewPrestige)

	// untouched
	assert.Equal(t, int64(999_999), profile.XP)
	assert.Equal(t, 2, profile.Prestige)
}

func TestApplyPrestigeTransformAccumulates(t *testing.T) {
	profile := &models.Profile{XP: 1_000_000, Prestige: 4, PrestigeXP: 500_000}

	result := ApplyPrestigeTransform(profile)
	require.True(t, result.Success)

	assert.Equal(t, 5, result.NewPrestige)
	assert.Equal(t, int64(700_000), profile.PrestigeXP)
	assert.Equal(t, int64(50_000), result.MoneyBonus)
}

func TestGrantTierRewards(t *testing.T) {
	profile := &models.Profile{}
	special := grantTierRewards(profile, 1)

	assert.Contains(t, special, "cursed_mirror")
	assert.Contains(t, special, "Rookie Reborn")
	assert.Equal(t, 1, profile.Inventory["cursed_mirror"])
	assert.True(t, profile.HasTitle("Rookie Reborn"))

	// tiers without entries grant nothing
	assert.Empty(t, grantTierRewards(profile, 2))

	// title already held is not duplicated
	again := &models.Profile{Titles: []string{"Ghost Whisperer"}}
	grantTierRewards(again, 5)
	count := 0
	for _, title := range again.Titles {
		if title == "Ghost Whisperer" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEffectiveLevel(t *testing.T) {
	assert.Equal(t, 0, EffectiveLevel(&models.Profile{}))

	// base 31 + 1*100 + 200000/10000
	profile := &models.Profile{XP: 100_000, Prestige: 1, PrestigeXP: 200_000}
	assert.Equal(t, 151, EffectiveLevel(profile))

	// prestige xp below one effective level contributes nothing
	profile = &models.Profile{XP: 0, Prestige: 3, PrestigeXP: 9_999}
	assert.Equal(t, 300, EffectiveLevel(profile))
}

func TestBonuses(t *testing.T) {
	zero := Bonuses(0)
	assert.InDelta(t, 1.0, zero.XPMultiplier, 1e-9)
	assert.InDelta(t, 1.0, zero.MoneyMultiplier, 1e-9)
	assert.Equal(t, 100, zero.MaxLevel)
	assert.Empty(t, zero.SpecialRewards)

	five := Bonuses(5)
	assert.InDelta(t, 1.5, five.XPMultiplier, 1e-9)
	assert.InDelta(t, 1.25, five.MoneyMultiplier, 1e-9)
	assert.Equal(t, 150, five.MaxLevel)
	assert.Contains(t, five.SpecialRewards, "cursed_mirror")
	assert.Contains(t, five.SpecialRewards, "tarot_deck")
	assert.Contains(t, five.SpecialRewards, "Ghost Whisperer")
	assert.NotContains(t, five.SpecialRewards, "ouija_board")
}
