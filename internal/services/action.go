package services

import (
	"context"
	"errors"
	"log"

	"github.com/hiendaovinh/toolkit/pkg/errorx"

	"phasbot/internal/models"
)

// ActionResult is what one inbound game action produced.
type ActionResult struct {
	Action       string                `json:"action"`
	Amount       int64                 `json:"amount"`
	Achievements []AchievementUnlock   `json:"achievements,omitempty"`
	Challenges   []ChallengeCompletion `json:"challenges,omitempty"`
}

// HandleAction ingests a non-message game action: it updates the profile's
// stat counters, advances matching challenges, and re-checks achievements.
// Stat persistence is the critical path; the rule engines are best effort,
// same as in the message flow.
func (service *ServiceXP) HandleAction(ctx context.Context, event *models.ActionEvent) (*ActionResult, error) {
	action := models.ChallengeAction(event.Action)
	if _, ok := models.ActionRequirementKeys[action]; !ok {
		return nil, errorx.Wrap(errors.New("unknown action"), errorx.Invalid)
	}

	amount := event.Amount
	if amount <= 0 {
		amount = 1
	}

	profile, err := service.serviceProfile.FindOrCreateProfile(ctx, event.UserID, event.GuildID)
	if err != nil {
		return nil, err
	}

	// dry-run on a scalar copy; only take the row lock when something changes
	scratch := *profile
	if ApplyActionStats(&scratch, event, amount) {
		err := service.serviceProfile.MutateProfile(ctx, profile, func(locked *models.Profile) {
			ApplyActionStats(locked, event, amount)
		})
		if err != nil {
			return nil, err
		}
	}

	result := &ActionResult{Action: event.Action, Amount: amount}

	completions, err := service.serviceChallenge.UpdateProgress(ctx, profile, action, amount)
	if err != nil {
		log.Println("challenge", event.Action+":", err)
	}
	result.Challenges = completions
	for _, completion := range completions {
		service.notifier.ChallengeCompleted(ctx, &models.ChallengeCompletedEvent{
			UserID:    event.UserID,
			GuildID:   event.GuildID,
			Challenge: completion.Challenge,
		})
	}

	unlocks, err := service.serviceAchievement.Check(ctx, profile)
	if err != nil {
		log.Println("achievement check:", err)
	}
	result.Achievements = unlocks
	for _, unlock := range unlocks {
		service.notifier.AchievementUnlocked(ctx, &models.AchievementUnlockedEvent{
			UserID:      event.UserID,
			GuildID:     event.GuildID,
			Achievement: unlock.Achievement,
		})
	}

	return result, nil
}

// ApplyActionStats mutates the profile's counters for one action event and
// reports whether anything changed. Unknown Stats keys are ignored.
func ApplyActionStats(profile *models.Profile, event *models.ActionEvent, amount int64) bool {
	changed := false
	n := int(amount)

	switch models.ChallengeAction(event.Action) {
	case models.ActionEarnMoney:
		profile.Balance += amount
		profile.TotalEarnings += amount
		changed = true
	case models.ActionSpendMoney:
		profile.Balance -= amount
		if profile.Balance < 0 {
			profile.Balance = 0
		}
		profile.MoneySpent += amount
		changed = true
	case models.ActionCompleteInvestigation:
		profile.TotalInvestigations += n
		if event.Success {
			profile.SuccessfulInvestigations += n
		}
		changed = true
	case models.ActionCompleteHunt:
		profile.TotalHunts += n
		if event.Success {
			profile.SuccessfulHunts += n
			profile.HuntStreak += n
		} else {
			profile.HuntStreak = 0
		}
		if event.Difficulty == "nightmare" {
			profile.NightmareHunts += n
		}
		changed = true
	case models.ActionFindItem, models.ActionIdentifyGhost, models.ActionUseCommand, models.ActionBeActive,
		models.ActionSendMessage, models.ActionGainXP:
		// challenge-only actions; counters, if any, arrive via Stats
	}

	for key, delta := range event.Stats {
		switch key {
		case "itemsUsed":
			profile.ItemsUsed += delta
		case "photosTaken":
			profile.PhotosTaken += delta
		case "ghostsExorcised":
			profile.GhostsExorcised += delta
		case "sanity":
			// absolute reading, not a delta
			if delta < 0 {
				delta = 0
			}
			if delta > 100 {
				delta = 100
			}
			profile.Sanity = delta
		default:
			continue
		}
		changed = true
	}

	return changed
}
