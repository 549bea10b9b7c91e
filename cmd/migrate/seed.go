package main

import "phasbot/internal/models"

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

// achievementCatalog is the default global catalog. Per-guild achievements are
// administered separately and carry a guild_id.
func achievementCatalog() []*models.Achievement {
	return []*models.Achievement{
		{
			ID:           "first-words",
			Name:         "First Words",
			Description:  "Send your first message on the radio.",
			Category:     "messaging",
			Requirements: models.AchievementRequirements{MessageCount: int64Ptr(1)},
			Rewards:      models.Rewards{XP: 50, Money: 100},
			Rarity:       models.RarityCommon,
			Points:       5,
			Enabled:      true,
		},
		{
			ID:           "chatterbox",
			Name:         "Chatterbox",
			Description:  "Send 1,000 messages.",
			Category:     "messaging",
			Requirements: models.AchievementRequirements{MessageCount: int64Ptr(1000)},
			Rewards:      models.Rewards{XP: 500, Money: 1500},
			Rarity:       models.RarityUncommon,
			Points:       15,
			Enabled:      true,
		},
		{
			ID:           "radio-static",
			Name:         "Radio Static",
			Description:  "Send 10,000 messages.",
			Category:     "messaging",
			Requirements: models.AchievementRequirements{MessageCount: int64Ptr(10000)},
			Rewards: models.Rewards{
				XP:    2500,
				Money: 10000,
				Title: "Voice of the Void",
			},
			Rarity:  models.RarityEpic,
			Points:  50,
			Enabled: true,
		},
		{
			ID:           "streak-week",
			Name:         "Regular Contact",
			Description:  "Keep a 7-day message streak.",
			Category:     "messaging",
			Requirements: models.AchievementRequirements{MessageStreak: intPtr(7)},
			Rewards: models.Rewards{
				XP: 300,
				XPBooster: &models.BoosterGrant{
					Name:            "streak_spark",
					Description:     "1.25x XP for keeping in touch",
					Multiplier:      1.25,
					DurationMinutes: 60 * 24,
				},
			},
			Rarity:  models.RarityUncommon,
			Points:  15,
			Enabled: true,
		},
		{
			ID:           "streak-month",
			Name:         "Haunted Regular",
			Description:  "Keep a 30-day message streak.",
			Category:     "messaging",
			Requirements: models.AchievementRequirements{MessageStreak: intPtr(30)},
			Rewards:      models.Rewards{XP: 1500, Money: 5000, Title: "The Constant"},
			Rarity:       models.RarityRare,
			Points:       30,
			Enabled:      true,
		},
		{
			ID:           "level-10",
			Name:         "Junior Investigator",
			Description:  "Reach level 10.",
			Category:     "progression",
			Requirements: models.AchievementRequirements{Level: intPtr(10)},
			Rewards:      models.Rewards{Money: 1000},
			Rarity:       models.RarityCommon,
			Points:       10,
			Enabled:      true,
		},
		{
			ID:           "level-50",
			Name:         "Senior Investigator",
			Description:  "Reach level 50.",
			Category:     "progression",
			Requirements: models.AchievementRequirements{Level: intPtr(50)},
			Rewards:      models.Rewards{Money: 10000, Title: "Senior Investigator"},
			Rarity:       models.RarityRare,
			Points:       30,
			Enabled:      true,
		},
		{
			ID:           "level-100",
			Name:         "Master Investigator",
			Description:  "Reach level 100. Prestige awaits.",
			Category:     "progression",
			Requirements: models.AchievementRequirements{Level: intPtr(100)},
			Rewards: models.Rewards{
				Money: 50000,
				Title: "Master Investigator",
				Items: map[string]int{"spirit_box": 1},
			},
			Rarity:  models.RarityLegendary,
			Points:  100,
			Enabled: true,
		},
		{
			ID:           "xp-hoard",
			Name:         "Experienced",
			Description:  "Accumulate 100,000 lifetime XP.",
			Category:     "progression",
			Requirements: models.AchievementRequirements{TotalXP: int64Ptr(100000)},
			Rewards:      models.Rewards{Money: 7500},
			Rarity:       models.RarityRare,
			Points:       25,
			Enabled:      true,
		},
		{
			ID:           "first-paycheck",
			Name:         "First Paycheck",
			Description:  "Earn 1,000 currency in total.",
			Category:     "economy",
			Requirements: models.AchievementRequirements{TotalEarnings: int64Ptr(1000)},
			Rewards:      models.Rewards{XP: 100},
			Rarity:       models.RarityCommon,
			Points:       5,
			Enabled:      true,
		},
		{
			ID:           "high-roller",
			Name:         "High Roller",
			Description:  "Hold 50,000 currency at once.",
			Category:     "economy",
			Requirements: models.AchievementRequirements{Balance: int64Ptr(50000)},
			Rewards:      models.Rewards{XP: 1000, Title: "High Roller"},
			Rarity:       models.RarityEpic,
			Points:       40,
			Enabled:      true,
		},
		{
			ID:           "big-spender",
			Name:         "Big Spender",
			Description:  "Spend 25,000 currency on gear.",
			Category:     "economy",
			Requirements: models.AchievementRequirements{MoneySpent: int64Ptr(25000)},
			Rewards:      models.Rewards{XP: 750, Items: map[string]int{"smudge_sticks": 3}},
			Rarity:       models.RarityRare,
			Points:       25,
			Enabled:      true,
		},
		{
			ID:           "first-case",
			Name:         "First Case",
			Description:  "Complete your first investigation.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{TotalInvestigations: intPtr(1)},
			Rewards:      models.Rewards{XP: 100, Money: 250},
			Rarity:       models.RarityCommon,
			Points:       5,
			Enabled:      true,
		},
		{
			ID:           "case-closed",
			Name:         "Case Closed",
			Description:  "Identify the ghost correctly 50 times.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{SuccessfulInvestigations: intPtr(50)},
			Rewards:      models.Rewards{XP: 1500, Money: 5000},
			Rarity:       models.RarityRare,
			Points:       30,
			Enabled:      true,
		},
		{
			ID:           "hunt-survivor",
			Name:         "Survivor",
			Description:  "Survive 100 hunts.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{TotalHunts: intPtr(100), SuccessfulHunts: intPtr(50)},
			Rewards:      models.Rewards{XP: 2000, Title: "Survivor"},
			Rarity:       models.RarityEpic,
			Points:       40,
			Enabled:      true,
		},
		{
			ID:           "hot-streak",
			Name:         "Hot Streak",
			Description:  "Survive 10 hunts in a row.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{HuntStreak: intPtr(10)},
			Rewards: models.Rewards{
				XP: 800,
				XPBooster: &models.BoosterGrant{
					Name:            "adrenaline",
					Description:     "1.5x XP while the rush lasts",
					Multiplier:      1.5,
					DurationMinutes: 120,
				},
			},
			Rarity:  models.RarityRare,
			Points:  25,
			Enabled: true,
		},
		{
			ID:           "nightmare-fuel",
			Name:         "Nightmare Fuel",
			Description:  "Survive 25 nightmare-difficulty hunts.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{NightmareHunts: intPtr(25)},
			Rewards:      models.Rewards{XP: 3000, Money: 15000, Title: "Fearless"},
			Rarity:       models.RarityLegendary,
			Points:       75,
			Enabled:      true,
		},
		{
			ID:           "gear-head",
			Name:         "Gear Head",
			Description:  "Use 200 items in the field.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{ItemsUsed: intPtr(200)},
			Rewards:      models.Rewards{XP: 600, Money: 2000},
			Rarity:       models.RarityUncommon,
			Points:       15,
			Enabled:      true,
		},
		{
			ID:           "shutterbug",
			Name:         "Shutterbug",
			Description:  "Take 100 ghost photos.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{PhotosTaken: intPtr(100)},
			Rewards:      models.Rewards{XP: 500, Items: map[string]int{"photo_camera": 1}},
			Rarity:       models.RarityUncommon,
			Points:       15,
			Enabled:      true,
		},
		{
			ID:           "exorcist",
			Name:         "The Exorcist",
			Description:  "Banish 10 ghosts for good.",
			Category:     "hunting",
			Requirements: models.AchievementRequirements{GhostsExorcised: intPtr(10)},
			Rewards:      models.Rewards{XP: 2500, Money: 10000, Title: "The Exorcist"},
			Rarity:       models.RarityEpic,
			Points:       50,
			Enabled:      true,
		},
		{
			ID:           "veteran-year",
			Name:         "One Year In",
			Description:  "Be a member for a full year.",
			Category:     "community",
			Requirements: models.AchievementRequirements{AccountAgeDays: intPtr(365)},
			Rewards:      models.Rewards{XP: 1000, Title: "Veteran"},
			Rarity:       models.RarityRare,
			Points:       25,
			Enabled:      true,
		},
		{
			ID:           "clear-head",
			Name:         "Clear Head",
			Description:  "Finish a day at full sanity.",
			Category:     "special",
			Requirements: models.AchievementRequirements{CustomCondition: "full_sanity"},
			Rewards:      models.Rewards{XP: 200},
			Rarity:       models.RarityCommon,
			Points:       10,
			Enabled:      true,
		},
		{
			ID:           "on-the-edge",
			Name:         "On the Edge",
			Description:  "Keep playing below 10% sanity.",
			Category:     "special",
			Requirements: models.AchievementRequirements{CustomCondition: "low_sanity"},
			Rewards:      models.Rewards{XP: 400, Items: map[string]int{"sanity_pills": 2}},
			Rarity:       models.RarityUncommon,
			Points:       15,
			Enabled:      true,
		},
		{
			ID:           "night-owl",
			Name:         "Night Owl",
			Description:  "Active in the dead hours, midnight to 6 AM.",
			Category:     "special",
			Requirements: models.AchievementRequirements{CustomCondition: "night_owl", MessageCount: int64Ptr(100)},
			Rewards:      models.Rewards{XP: 300, Title: "Night Owl"},
			Rarity:       models.RarityUncommon,
			Points:       15,
			Enabled:      true,
		},
		{
			ID:           "early-bird",
			Name:         "Early Bird",
			Description:  "Up with the sun, 5 to 9 AM.",
			Category:     "special",
			Requirements: models.AchievementRequirements{CustomCondition: "early_bird", MessageCount: int64Ptr(100)},
			Rewards:      models.Rewards{XP: 300, Title: "Early Bird"},
			Rarity:       models.RarityUncommon,
			Points:       15,
			Enabled:      true,
		},
		{
			ID:           "weekend-warrior",
			Name:         "Weekend Warrior",
			Description:  "Show up on the weekend.",
			Category:     "special",
			Requirements: models.AchievementRequirements{CustomCondition: "weekend_warrior", MessageStreak: intPtr(3)},
			Rewards:      models.Rewards{XP: 250, Money: 500},
			Rarity:       models.RarityCommon,
			Points:       10,
			Enabled:      true,
		},
	}
}
