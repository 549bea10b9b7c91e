package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"phasbot/internal/pkg/leveling"
)

func TestRolesForLevelUp(t *testing.T) {
	levelRoles := map[string]string{
		"5":  "role-novice",
		"10": "role-hunter",
		"20": "role-veteran",
	}

	// multi-level jump grants every crossed threshold
	assert.Equal(t, []string{"role-novice", "role-hunter"}, RolesForLevelUp(levelRoles, 4, 12))

	// single level
	assert.Equal(t, []string{"role-hunter"}, RolesForLevelUp(levelRoles, 9, 10))

	// no thresholds crossed
	assert.Empty(t, RolesForLevelUp(levelRoles, 10, 12))

	// boundary is exclusive on the old level
	assert.Empty(t, RolesForLevelUp(levelRoles, 5, 6))

	// nil config
	assert.Empty(t, RolesForLevelUp(nil, 0, 100))
}

func TestXPGainedArithmetic(t *testing.T) {
	// the award is floor(base * multiplier), never rounded up
	cases := []struct {
		base       int
		multiplier float64
		want       int64
	}{
		{15, 1.0, 15},
		{25, 1.0, 25},
		{15, 1.44, 21},  // 21.6
		{25, 0.8, 20},   // short message penalty
		{17, 2.55, 43},  // 43.35
		{20, 1.15, 22},  // 23 would be ceil
	}
	for _, c := range cases {
		got := int64(math.Floor(float64(c.base) * c.multiplier))
		assert.Equal(t, c.want, got, "base %d mult %v", c.base, c.multiplier)
	}
}

func TestAwardNeverSkipsIntermediateLevels(t *testing.T) {
	// a single huge award must report every level crossed so role rewards
	// can be granted for each of them
	oldXP := leveling.XPForLevel(4)
	newXP := leveling.XPForLevel(12) + 1

	levelUp := leveling.CheckLevelUp(oldXP, newXP)
	assert.True(t, levelUp.LeveledUp)
	assert.Equal(t, 4, levelUp.OldLevel)
	assert.Equal(t, 12, levelUp.NewLevel)
	assert.Equal(t, 8, levelUp.LevelsGained)
}
