package leveling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromXP(t *testing.T) {
	cases := []struct {
		xp    int64
		level int
	}{
		{0, 0},
		{-50, 0},
		{20, 0},
		{99, 0},
		{100, 1},
		{9999, 9},
		{10499, 10},
		{100000, 31},
		{1000000, 100},
	}

	for _, c := range cases {
		assert.Equal(t, c.level, LevelFromXP(c.xp), "xp=%d", c.xp)
	}
}

func TestXPForLevelRoundTrip(t *testing.T) {
	for level := 0; level <= 250; level++ {
		xp := XPForLevel(level)
		require.Equal(t, level, LevelFromXP(xp), "level=%d xp=%d", level, xp)
	}
}

func TestLevelMonotonic(t *testing.T) {
	prev := 0
	for xp := int64(0); xp <= 2_000_000; xp += 997 {
		level := LevelFromXP(xp)
		require.GreaterOrEqual(t, level, prev, "xp=%d", xp)
		require.LessOrEqual(t, XPForLevel(level), xp, "xp=%d", xp)
		prev = level
	}
}

func TestXPNeededForLevel(t *testing.T) {
	assert.Equal(t, int64(1000000), XPNeededForLevel(0, 100))
	assert.Equal(t, int64(0), XPNeededForLevel(1000000, 100))
	assert.Equal(t, int64(0), XPNeededForLevel(2000000, 100))
	assert.Equal(t, int64(100), XPNeededForLevel(0, 1))
}

func TestLevelProgress(t *testing.T) {
	p := LevelProgress(150)
	assert.Equal(t, 1, p.CurrentLevel)
	assert.Equal(t, int64(100), p.XPForCurrentLevel)
	assert.Equal(t, int64(400), p.XPForNextLevel)
	assert.Equal(t, int64(50), p.ProgressXP)
	assert.Equal(t, int64(300), p.NeededXP)
	assert.InDelta(t, 16.666, p.ProgressPercentage, 0.01)

	zero := LevelProgress(0)
	assert.Equal(t, 0, zero.CurrentLevel)
	assert.Equal(t, float64(0), zero.ProgressPercentage)

	clamped := LevelProgress(-10)
	assert.Equal(t, int64(0), clamped.ProgressXP)
}

func TestCheckLevelUp(t *testing.T) {
	up := CheckLevelUp(9999, 10499)
	assert.True(t, up.LeveledUp)
	assert.Equal(t, 9, up.OldLevel)
	assert.Equal(t, 10, up.NewLevel)
	assert.Equal(t, 1, up.LevelsGained)

	flat := CheckLevelUp(0, 20)
	assert.False(t, flat.LeveledUp)
	assert.Equal(t, 0, flat.LevelsGained)

	jump := CheckLevelUp(0, 100000)
	assert.True(t, jump.LeveledUp)
	assert.Equal(t, 31, jump.LevelsGained)
}
