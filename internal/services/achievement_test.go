package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"phasbot/internal/models"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestRequirementsMetVacuous(t *testing.T) {
	// empty bag matches any profile
	assert.True(t, requirementsMet(&models.Profile{}, models.AchievementRequirements{}, time.Now()))
}

func TestRequirementsMetThresholds(t *testing.T) {
	profile := &models.Profile{
		Level:         12,
		XP:            15_000,
		MessageCount:  300,
		MessageStreak: 8,
		Balance:       500,
		TotalHunts:    4,
	}
	now := time.Now()

	assert.True(t, requirementsMet(profile, models.AchievementRequirements{
		Level:        intPtr(10),
		MessageCount: int64Ptr(300),
	}, now))

	// one failing field sinks the conjunction
	assert.False(t, requirementsMet(profile, models.AchievementRequirements{
		Level:      intPtr(10),
		TotalHunts: intPtr(5),
	}, now))

	// exact threshold passes
	assert.True(t, requirementsMet(profile, models.AchievementRequirements{
		MessageStreak: intPtr(8),
	}, now))
}

func TestRequirementsMetAccountAge(t *testing.T) {
	now := time.Now()
	profile := &models.Profile{CreatedAt: now.AddDate(0, 0, -30)}

	assert.True(t, requirementsMet(profile, models.AchievementRequirements{AccountAgeDays: intPtr(30)}, now))
	assert.False(t, requirementsMet(profile, models.AchievementRequirements{AccountAgeDays: intPtr(31)}, now))
}

func TestRequirementsMetCustomConditions(t *testing.T) {
	sane := &models.Profile{Sanity: 100}
	shaken := &models.Profile{Sanity: 5}
	now := time.Now()

	assert.True(t, requirementsMet(sane, models.AchievementRequirements{CustomCondition: "full_sanity"}, now))
	assert.False(t, requirementsMet(shaken, models.AchievementRequirements{CustomCondition: "full_sanity"}, now))
	assert.True(t, requirementsMet(shaken, models.AchievementRequirements{CustomCondition: "low_sanity"}, now))

	// unknown names fail closed instead of erroring
	assert.False(t, requirementsMet(sane, models.AchievementRequirements{CustomCondition: "does_not_exist"}, now))
}

func TestRequirementsMetTimeWindows(t *testing.T) {
	profile := &models.Profile{}
	night := time.Date(2026, time.September, 1, 3, 0, 0, 0, time.UTC)
	morning := time.Date(2026, time.September, 1, 7, 0, 0, 0, time.UTC)
	noon := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, time.September, 5, 12, 0, 0, 0, time.UTC)

	assert.True(t, requirementsMet(profile, models.AchievementRequirements{CustomCondition: "night_owl"}, night))
	assert.False(t, requirementsMet(profile, models.AchievementRequirements{CustomCondition: "night_owl"}, noon))

	assert.True(t, requirementsMet(profile, models.AchievementRequirements{CustomCondition: "early_bird"}, morning))
	assert.False(t, requirementsMet(profile, models.AchievementRequirements{CustomCondition: "early_bird"}, night))

	assert.True(t, requirementsMet(profile, models.AchievementRequirements{CustomCondition: "weekend_warrior"}, saturday))
	assert.False(t, requirementsMet(profile, models.AchievementRequirements{CustomCondition: "weekend_warrior"}, noon))
}

func TestRequirementsMetCustomPlusThresholds(t *testing.T) {
	// custom condition is conjoined with the threshold bag, not a replacement
	profile := &models.Profile{Sanity: 100, Level: 3}
	req := models.AchievementRequirements{Level: intPtr(5), CustomCondition: "full_sanity"}
	assert.False(t, requirementsMet(profile, req, time.Now()))

	profile.Level = 5
	assert.True(t, requirementsMet(profile, req, time.Now()))
}

func TestEligibleUnlocksSecondEvaluationEmpty(t *testing.T) {
	profile := &models.Profile{GuildID: "g1", Level: 10}
	catalog := &AchievementCatalog{Entries: map[string]*models.Achievement{
		"level-10": {ID: "level-10", Requirements: models.AchievementRequirements{Level: intPtr(10)}},
		"level-50": {ID: "level-50", Requirements: models.AchievementRequirements{Level: intPtr(50)}},
	}}
	now := time.Now()

	unlocked := map[string]bool{}
	first := eligibleUnlocks(catalog, profile, unlocked, now)
	assert.Len(t, first, 1)
	assert.Equal(t, "level-10", first[0].ID)

	// once recorded as unlocked the entry never comes back, same snapshot or not
	unlocked["level-10"] = true
	assert.Empty(t, eligibleUnlocks(catalog, profile, unlocked, now))
}

func TestEligibleUnlocksGuildScoped(t *testing.T) {
	other := "g2"
	profile := &models.Profile{GuildID: "g1", Level: 10}
	catalog := &AchievementCatalog{Entries: map[string]*models.Achievement{
		"guild-only": {ID: "guild-only", GuildID: &other, Requirements: models.AchievementRequirements{Level: intPtr(1)}},
	}}

	assert.Empty(t, eligibleUnlocks(catalog, profile, map[string]bool{}, time.Now()))
}
