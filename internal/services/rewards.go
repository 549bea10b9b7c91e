package services

import (
	"time"

	"phasbot/internal/models"
	"phasbot/internal/pkg"
)

// NextStreak derives the new consecutive-day streak from the previous message
// day. Same day keeps the streak, the previous day extends it, any gap resets
// to 1. Days are UTC epoch days so DST never splits a streak.
func NextStreak(profile *models.Profile, now time.Time) int {
	today := pkg.EpochDay(now)
	switch {
	case profile.LastMessageDay == today:
		if profile.MessageStreak == 0 {
			return 1
		}
		return profile.MessageStreak
	case profile.LastMessageDay == today-1:
		return profile.MessageStreak + 1
	default:
		return 1
	}
}

// ApplyRewards folds one reward bundle into the profile in memory. The caller
// persists. Titles and inventory additions are idempotent per name.
func ApplyRewards(profile *models.Profile, rewards models.Rewards, now time.Time) {
	if rewards.XP > 0 {
		profile.XP += rewards.XP
		profile.DailyXP += rewards.XP
		profile.WeeklyXP += rewards.XP
		profile.MonthlyXP += rewards.XP
	}

	if rewards.Money > 0 {
		profile.Balance += rewards.Money
		profile.TotalEarnings += rewards.Money
	}

	for item, count := range rewards.Items {
		if profile.Inventory == nil {
			profile.Inventory = map[string]int{}
		}
		profile.Inventory[item] += count
	}

	if rewards.Title != "" && !profile.HasTitle(rewards.Title) {
		profile.Titles = append(profile.Titles, rewards.Title)
	}

	if grant := rewards.XPBooster; grant != nil {
		booster := models.Booster{
			Name:        grant.Name,
			Description: grant.Description,
			Multiplier:  grant.Multiplier,
			ExpiresAt:   now.Add(time.Duration(grant.DurationMinutes) * time.Minute),
			AddedAt:     now,
		}
		replaced := false
		for i, b := range profile.XPBoosters {
			if b.Name == booster.Name {
				profile.XPBoosters[i].ExpiresAt = booster.ExpiresAt
				profile.XPBoosters[i].Multiplier = booster.Multiplier
				replaced = true
				break
			}
		}
		if !replaced {
			profile.XPBoosters = append(profile.XPBoosters, booster)
		}
	}
}
