package services

import (
	"fmt"
	"math"
	"time"

	"phasbot/internal/models"
	"phasbot/internal/pkg"
)

const (
	MULTIPLIER_PER_LEVEL        = 0.005
	MULTIPLIER_PER_STREAK_DAY   = 0.01
	MULTIPLIER_STREAK_CAP       = 0.5
	MULTIPLIER_STREAK_MIN_DAYS  = 7
	MULTIPLIER_PREMIUM          = 2.0
	MULTIPLIER_PER_ACHIEVEMENT  = 0.002
	MULTIPLIER_WEEKEND          = 1.25
	MULTIPLIER_PEAK_HOUR        = 1.15
	MULTIPLIER_LONG_MESSAGE     = 1.1
	MULTIPLIER_SHORT_MESSAGE    = 0.8
	LONG_MESSAGE_LENGTH         = 100
	SHORT_MESSAGE_LENGTH        = 10
)

type MultiplierEntry struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Source      string  `json:"source"`
	Description string  `json:"description,omitempty"`
}

type MultiplierBreakdown struct {
	TotalMultiplier   float64           `json:"total_multiplier"`
	ActiveMultipliers []MultiplierEntry `json:"active_multipliers"`
	BonusPercentage   int               `json:"bonus_percentage"`
}

type MultiplierOptions struct {
	// MessageLength < 0 means "not a message event"; the length modifier is
	// skipped entirely.
	MessageLength int
}

// ComputeMultiplier combines every bonus source into one factor. It is a pure
// read over the profile snapshot: expired boosters are ignored here, not
// pruned; ServiceProfile.PruneExpiredBoosters owns that write.
func ComputeMultiplier(profile *models.Profile, now time.Time, opts MultiplierOptions) *MultiplierBreakdown {
	breakdown := &MultiplierBreakdown{
		ActiveMultipliers: []MultiplierEntry{
			{Name: "Base", Value: 1.0, Source: "base"},
		},
	}
	total := 1.0

	if profile.Level > 0 {
		v := 1 + float64(profile.Level)*MULTIPLIER_PER_LEVEL
		total *= v
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:        "Level Bonus",
			Value:       v,
			Source:      "level",
			Description: fmt.Sprintf("0.5%% per level (level %d)", profile.Level),
		})
	}

	if profile.MessageStreak >= MULTIPLIER_STREAK_MIN_DAYS {
		bonus := math.Min(float64(profile.MessageStreak)*MULTIPLIER_PER_STREAK_DAY, MULTIPLIER_STREAK_CAP)
		v := 1 + bonus
		total *= v
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:        "Streak Bonus",
			Value:       v,
			Source:      "streak",
			Description: fmt.Sprintf("%d day streak", profile.MessageStreak),
		})
	}

	if profile.IsPremium(now) {
		total *= MULTIPLIER_PREMIUM
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:   "Premium",
			Value:  MULTIPLIER_PREMIUM,
			Source: "premium",
		})
	}

	for _, booster := range profile.XPBoosters {
		if !booster.Active(now) {
			continue
		}
		total *= booster.Multiplier
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:        booster.Name,
			Value:       booster.Multiplier,
			Source:      "booster",
			Description: booster.Description,
		})
	}

	if n := len(profile.Achievements); n > 0 {
		v := 1 + float64(n)*MULTIPLIER_PER_ACHIEVEMENT
		total *= v
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:        "Achievement Bonus",
			Value:       v,
			Source:      "achievements",
			Description: fmt.Sprintf("%d achievements unlocked", n),
		})
	}

	if pkg.IsWeekend(now) {
		total *= MULTIPLIER_WEEKEND
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:   "Weekend Bonus",
			Value:  MULTIPLIER_WEEKEND,
			Source: "calendar",
		})
	}

	if pkg.IsPeakHour(now) {
		total *= MULTIPLIER_PEAK_HOUR
		breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
			Name:   "Peak Hours",
			Value:  MULTIPLIER_PEAK_HOUR,
			Source: "calendar",
		})
	}

	if opts.MessageLength >= 0 {
		if opts.MessageLength > LONG_MESSAGE_LENGTH {
			total *= MULTIPLIER_LONG_MESSAGE
			breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
				Name:   "Quality Message",
				Value:  MULTIPLIER_LONG_MESSAGE,
				Source: "message",
			})
		} else if opts.MessageLength < SHORT_MESSAGE_LENGTH {
			total *= MULTIPLIER_SHORT_MESSAGE
			breakdown.ActiveMultipliers = append(breakdown.ActiveMultipliers, MultiplierEntry{
				Name:   "Short Message",
				Value:  MULTIPLIER_SHORT_MESSAGE,
				Source: "message",
			})
		}
	}

	breakdown.TotalMultiplier = math.Round(total*100) / 100
	breakdown.BonusPercentage = int(math.Round((breakdown.TotalMultiplier - 1) * 100))
	return breakdown
}
