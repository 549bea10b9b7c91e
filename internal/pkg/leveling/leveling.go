// Package leveling holds the XP/level curve. Every level shown or stored
// anywhere in the system comes from these functions.
package leveling

import "math"

// LevelFromXP maps total XP onto a level using an inverse-square-root curve.
// Negative input is treated as zero XP.
func LevelFromXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(math.Floor(0.1 * math.Sqrt(float64(xp))))
}

// XPForLevel returns the total XP at which the given level starts.
func XPForLevel(level int) int64 {
	if level < 0 {
		level = 0
	}
	v := float64(level) / 0.1
	return int64(v * v)
}

// XPNeededForLevel returns how much more XP is required to reach targetLevel.
func XPNeededForLevel(currentXP int64, targetLevel int) int64 {
	needed := XPForLevel(targetLevel) - currentXP
	if needed < 0 {
		return 0
	}
	return needed
}

type Progress struct {
	CurrentLevel       int     `json:"current_level"`
	XPForCurrentLevel  int64   `json:"xp_for_current_level"`
	XPForNextLevel     int64   `json:"xp_for_next_level"`
	ProgressXP         int64   `json:"progress_xp"`
	NeededXP           int64   `json:"needed_xp"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

// LevelProgress describes where xp sits inside its level bracket.
func LevelProgress(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}

	level := LevelFromXP(xp)
	floor := XPForLevel(level)
	ceil := XPForLevel(level + 1)

	p := Progress{
		CurrentLevel:      level,
		XPForCurrentLevel: floor,
		XPForNextLevel:    ceil,
		ProgressXP:        xp - floor,
		NeededXP:          ceil - floor,
	}

	if p.NeededXP > 0 {
		pct := float64(p.ProgressXP) / float64(p.NeededXP) * 100
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		p.ProgressPercentage = pct
	}

	return p
}

type LevelUp struct {
	LeveledUp    bool `json:"leveled_up"`
	OldLevel     int  `json:"old_level"`
	NewLevel     int  `json:"new_level"`
	LevelsGained int  `json:"levels_gained"`
}

// CheckLevelUp compares the levels implied by two XP totals. A single award can
// cross several levels at once; LevelsGained carries the full jump.
func CheckLevelUp(oldXP, newXP int64) LevelUp {
	oldLevel := LevelFromXP(oldXP)
	newLevel := LevelFromXP(newXP)

	return LevelUp{
		LeveledUp:    newLevel > oldLevel,
		OldLevel:     oldLevel,
		NewLevel:     newLevel,
		LevelsGained: max(newLevel-oldLevel, 0),
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
