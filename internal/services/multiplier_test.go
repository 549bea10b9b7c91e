package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phasbot/internal/models"
)

// a Tuesday at noon UTC: no weekend, no peak hour
var quietTime = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func noModifier() MultiplierOptions { return MultiplierOptions{MessageLength: -1} }

func TestComputeMultiplierBaseOnly(t *testing.T) {
	profile := &models.Profile{}
	b := ComputeMultiplier(profile, quietTime, noModifier())

	assert.Equal(t, 1.0, b.TotalMultiplier)
	assert.Equal(t, 0, b.BonusPercentage)
	require.Len(t, b.ActiveMultipliers, 1)
	assert.Equal(t, "base", b.ActiveMultipliers[0].Source)
}

func TestComputeMultiplierLevelBonus(t *testing.T) {
	profile := &models.Profile{Level: 10}
	b := ComputeMultiplier(profile, quietTime, noModifier())

	assert.InDelta(t, 1.05, b.TotalMultiplier, 1e-9)
	assert.Equal(t, 5, b.BonusPercentage)
}

func TestComputeMultiplierStreak(t *testing.T) {
	// below threshold: no entry
	b := ComputeMultiplier(&models.Profile{MessageStreak: 6}, quietTime, noModifier())
	assert.Equal(t, 1.0, b.TotalMultiplier)

	// at threshold: 7%
	b = ComputeMultiplier(&models.Profile{MessageStreak: 7}, quietTime, noModifier())
	assert.InDelta(t, 1.07, b.TotalMultiplier, 1e-9)

	// capped at +50%
	b = ComputeMultiplier(&models.Profile{MessageStreak: 365}, quietTime, noModifier())
	assert.InDelta(t, 1.5, b.TotalMultiplier, 1e-9)
}

func TestComputeMultiplierPremium(t *testing.T) {
	future := quietTime.Add(time.Hour)
	past := quietTime.Add(-time.Hour)

	b := ComputeMultiplier(&models.Profile{PremiumUntil: &future}, quietTime, noModifier())
	assert.InDelta(t, 2.0, b.TotalMultiplier, 1e-9)

	b = ComputeMultiplier(&models.Profile{PremiumUntil: &past}, quietTime, noModifier())
	assert.Equal(t, 1.0, b.TotalMultiplier)
}

func TestComputeMultiplierBoosters(t *testing.T) {
	profile := &models.Profile{
		XPBoosters: []models.Booster{
			{Name: "Event Boost", Multiplier: 1.5, ExpiresAt: quietTime.Add(time.Hour)},
			{Name: "Stale Boost", Multiplier: 3.0, ExpiresAt: quietTime.Add(-time.Minute)},
		},
	}

	b := ComputeMultiplier(profile, quietTime, noModifier())
	assert.InDelta(t, 1.5, b.TotalMultiplier, 1e-9)

	// the expired entry never shows up in the breakdown
	for _, m := range b.ActiveMultipliers {
		assert.NotEqual(t, "Stale Boost", m.Name)
	}

	// pure read: the stored list is untouched
	assert.Len(t, profile.XPBoosters, 2)
}

func TestComputeMultiplierCalendar(t *testing.T) {
	friday := time.Date(2026, 9, 4, 12, 0, 0, 0, time.UTC)
	b := ComputeMultiplier(&models.Profile{}, friday, noModifier())
	assert.InDelta(t, 1.25, b.TotalMultiplier, 1e-9)

	peak := time.Date(2026, 9, 1, 19, 0, 0, 0, time.UTC)
	b = ComputeMultiplier(&models.Profile{}, peak, noModifier())
	assert.InDelta(t, 1.15, b.TotalMultiplier, 1e-9)

	fridayPeak := time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC)
	b = ComputeMultiplier(&models.Profile{}, fridayPeak, noModifier())
	assert.InDelta(t, 1.44, b.TotalMultiplier, 0.005) // 1.25*1.15 rounded to 2dp
}

func TestComputeMultiplierMessageLength(t *testing.T) {
	b := ComputeMultiplier(&models.Profile{}, quietTime, MultiplierOptions{MessageLength: 150})
	assert.InDelta(t, 1.1, b.TotalMultiplier, 1e-9)

	b = ComputeMultiplier(&models.Profile{}, quietTime, MultiplierOptions{MessageLength: 5})
	assert.InDelta(t, 0.8, b.TotalMultiplier, 1e-9)

	b = ComputeMultiplier(&models.Profile{}, quietTime, MultiplierOptions{MessageLength: 50})
	assert.Equal(t, 1.0, b.TotalMultiplier)
	assert.Len(t, b.ActiveMultipliers, 1)
}

func TestComputeMultiplierAchievementBonus(t *testing.T) {
	profile := &models.Profile{Achievements: []string{"a", "b", "c", "d", "e"}}
	b := ComputeMultiplier(profile, quietTime, noModifier())
	assert.InDelta(t, 1.01, b.TotalMultiplier, 1e-9)
}

// factors commute: the composed total equals the product of each factor
// measured in isolation, to float tolerance before rounding
func TestComputeMultiplierComposition(t *testing.T) {
	future := quietTime.Add(time.Hour)
	profile := &models.Profile{
		Level:         20,
		MessageStreak: 10,
		PremiumUntil:  &future,
		Achievements:  []string{"one", "two"},
		XPBoosters: []models.Booster{
			{Name: "Seance", Multiplier: 1.3, ExpiresAt: future},
		},
	}

	b := ComputeMultiplier(profile, quietTime, MultiplierOptions{MessageLength: 200})

	expected := 1.0
	for _, m := range b.ActiveMultipliers {
		expected *= m.Value
	}
	// TotalMultiplier is the 2dp rounding of the factor product
	assert.InDelta(t, expected, b.TotalMultiplier, 0.005)
	assert.Equal(t, int((b.TotalMultiplier-1)*100+0.5), b.BonusPercentage)
}
