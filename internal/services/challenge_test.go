package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phasbot/internal/models"
)

func TestPickTemplatesCountRespected(t *testing.T) {
	picked, err := pickTemplates(dailyTemplates, 3)
	require.NoError(t, err)
	assert.Len(t, picked, 3)

	// no template picked twice
	seen := map[string]bool{}
	for _, template := range picked {
		assert.False(t, seen[template.Slug], "duplicate template %s", template.Slug)
		seen[template.Slug] = true
	}
}

func TestPickTemplatesCountExceedsPool(t *testing.T) {
	picked, err := pickTemplates(monthlyTemplates, 10)
	require.NoError(t, err)
	assert.Len(t, picked, len(monthlyTemplates))
}

func TestBuildChallengeInstanceDeterministicID(t *testing.T) {
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	a := buildChallengeInstance(dailyTemplates[0], models.ChallengeDaily, start, end)
	b := buildChallengeInstance(dailyTemplates[0], models.ChallengeDaily, start, end)

	assert.Equal(t, "daily-2026-09-01-chatterbox", a.ID)
	assert.Equal(t, a.ID, b.ID)
	assert.True(t, a.Enabled)
	assert.Equal(t, start, a.StartDate)
	assert.Equal(t, end, a.EndDate)
}

func TestChallengeActiveAt(t *testing.T) {
	start := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	guild := "guild-1"

	c := &models.Challenge{Enabled: true, StartDate: start, EndDate: end}
	assert.True(t, c.ActiveAt(start, "any"))
	assert.True(t, c.ActiveAt(end.Add(-time.Second), "any"))
	assert.False(t, c.ActiveAt(end, "any"), "end date is exclusive")
	assert.False(t, c.ActiveAt(start.Add(-time.Second), "any"))

	c.Enabled = false
	assert.False(t, c.ActiveAt(start, "any"))

	c.Enabled = true
	c.GuildID = &guild
	assert.True(t, c.ActiveAt(start, "guild-1"))
	assert.False(t, c.ActiveAt(start, "guild-2"))
}

func TestMetAllRequirements(t *testing.T) {
	c := &models.Challenge{Requirements: map[string]int64{"sendMessages": 20, "gainXp": 300}}

	uc := &models.UserChallenge{Progress: map[string]int64{"sendMessages": 20, "gainXp": 299}}
	assert.False(t, uc.MetAllRequirements(c))

	uc.Progress["gainXp"] = 300
	assert.True(t, uc.MetAllRequirements(c))

	// an empty requirement bag never completes
	empty := &models.Challenge{Requirements: map[string]int64{}}
	assert.False(t, uc.MetAllRequirements(empty))
}

func TestActionRequirementKeysCoverTemplates(t *testing.T) {
	// every requirement key used by the template library must be reachable
	// through some action, otherwise the challenge can never progress
	reachable := map[string]bool{}
	for _, key := range models.ActionRequirementKeys {
		reachable[key] = true
	}

	all := [][]ChallengeTemplate{dailyTemplates, weeklyTemplates, monthlyTemplates}
	for _, templates := range all {
		for _, template := range templates {
			for key := range template.Requirements {
				assert.True(t, reachable[key], "requirement key %q in template %q has no action", key, template.Slug)
			}
		}
	}
}

func TestCompletableNowFiresOnce(t *testing.T) {
	challenge := &models.Challenge{
		ID:             "daily-2026-09-01-chatterbox",
		Requirements:   map[string]int64{string(models.ActionSendMessage): 10},
		MaxCompletions: 1,
	}
	row := &models.UserChallenge{
		ChallengeID: challenge.ID,
		Progress:    map[string]int64{string(models.ActionSendMessage): 10},
	}

	assert.True(t, completableNow(challenge, row))

	// a completed row never fires again even though requirements still hold
	row.Completed = true
	row.CompletionCount = 1
	assert.False(t, completableNow(challenge, row))
}

func TestCompletableNowRespectsCompletionCap(t *testing.T) {
	challenge := &models.Challenge{
		ID:             "special-marathon",
		Requirements:   map[string]int64{string(models.ActionCompleteHunt): 3},
		MaxCompletions: 2,
	}
	row := &models.UserChallenge{
		ChallengeID:     challenge.ID,
		Progress:        map[string]int64{string(models.ActionCompleteHunt): 3},
		CompletionCount: 2,
	}

	// cap holds even with the flag clear
	assert.False(t, completableNow(challenge, row))

	row.CompletionCount = 1
	assert.True(t, completableNow(challenge, row))
}

func TestCompletableNowRequiresThresholds(t *testing.T) {
	challenge := &models.Challenge{
		ID:             "daily-2026-09-01-investigator",
		Requirements:   map[string]int64{string(models.ActionCompleteInvestigation): 3},
		MaxCompletions: 1,
	}
	row := &models.UserChallenge{
		ChallengeID: challenge.ID,
		Progress:    map[string]int64{string(models.ActionCompleteInvestigation): 2},
	}

	assert.False(t, completableNow(challenge, row))
}
