package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/samber/do"
	"github.com/uptrace/bun"

	"phasbot/internal/datastore"
	"phasbot/internal/models"
	"phasbot/internal/pkg"
)

// ChallengeCompletion pairs a completed challenge with the user's row.
type ChallengeCompletion struct {
	Challenge     *models.Challenge     `json:"challenge"`
	UserChallenge *models.UserChallenge `json:"user_challenge"`
}

// ChallengeCatalog is the immutable snapshot evaluators work from.
type ChallengeCatalog struct {
	Entries  map[string]*models.Challenge
	LoadedAt time.Time
}

// ChallengeTemplate seeds periodic regeneration. Slug feeds the deterministic
// instance id, weight skews the random pick.
type ChallengeTemplate struct {
	Slug         string
	Title        string
	Description  string
	Weight       int
	Requirements map[string]int64
	Rewards      models.Rewards
}

var dailyTemplates = []ChallengeTemplate{
	{
		Slug: "chatterbox", Title: "Chatterbox", Weight: 10,
		Description:  "Send 20 messages today.",
		Requirements: map[string]int64{"sendMessages": 20},
		Rewards:      models.Rewards{XP: 200, Money: 100},
	},
	{
		Slug: "xp-grind", Title: "Evidence Collector", Weight: 10,
		Description:  "Earn 300 XP today.",
		Requirements: map[string]int64{"gainXp": 300},
		Rewards:      models.Rewards{XP: 150, Money: 150},
	},
	{
		Slug: "ghost-hunt", Title: "Night Shift", Weight: 8,
		Description:  "Complete 2 hunts today.",
		Requirements: map[string]int64{"completeHunts": 2},
		Rewards:      models.Rewards{XP: 250, Money: 200},
	},
	{
		Slug: "investigator", Title: "On the Case", Weight: 8,
		Description:  "Complete 3 investigations today.",
		Requirements: map[string]int64{"completeInvestigations": 3},
		Rewards:      models.Rewards{XP: 250, Money: 150},
	},
	{
		Slug: "scavenger", Title: "Scavenger", Weight: 5,
		Description:  "Find 2 cursed items today.",
		Requirements: map[string]int64{"findItems": 2},
		Rewards:      models.Rewards{XP: 300, Money: 250, Items: map[string]int{"sanity_pills": 1}},
	},
}

var weeklyTemplates = []ChallengeTemplate{
	{
		Slug: "dedicated", Title: "Dedicated Investigator", Weight: 10,
		Description:  "Be active on 5 different days this week.",
		Requirements: map[string]int64{"activeDays": 5},
		Rewards:      models.Rewards{XP: 1000, Money: 500},
	},
	{
		Slug: "marathon", Title: "Message Marathon", Weight: 10,
		Description:  "Send 150 messages this week.",
		Requirements: map[string]int64{"sendMessages": 150},
		Rewards:      models.Rewards{XP: 800, Money: 600},
	},
	{
		Slug: "exorcist", Title: "The Exorcist", Weight: 6,
		Description:  "Identify 5 ghosts this week.",
		Requirements: map[string]int64{"identifyGhosts": 5},
		Rewards: models.Rewards{
			XP: 1200, Money: 800,
			XPBooster: &models.BoosterGrant{Name: "Weekly Exorcist", Description: "Bonus XP for a job well done", Multiplier: 1.25, DurationMinutes: 24 * 60},
		},
	},
	{
		Slug: "big-spender", Title: "Big Spender", Weight: 5,
		Description:  "Spend 2000 money this week.",
		Requirements: map[string]int64{"spendMoney": 2000},
		Rewards:      models.Rewards{XP: 600, Money: 1000},
	},
}

var monthlyTemplates = []ChallengeTemplate{
	{
		Slug: "veteran", Title: "Veteran Hunter", Weight: 10,
		Description:  "Complete 30 hunts this month.",
		Requirements: map[string]int64{"completeHunts": 30},
		Rewards:      models.Rewards{XP: 5000, Money: 3000, Title: "Monthly Veteran"},
	},
	{
		Slug: "community-pillar", Title: "Community Pillar", Weight: 10,
		Description:  "Send 600 messages this month.",
		Requirements: map[string]int64{"sendMessages": 600},
		Rewards:      models.Rewards{XP: 4000, Money: 2500},
	},
}

type ServiceChallenge struct {
	container      *do.Injector
	postgresDB     *bun.DB
	rs             *redsync.Redsync
	serviceProfile *ServiceProfile
	serviceConfig  *ServiceConfig

	catalog atomic.Pointer[ChallengeCatalog]
}

func NewServiceChallenge(container *do.Injector) (*ServiceChallenge, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	serviceProfile, err := do.Invoke[*ServiceProfile](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	service := &ServiceChallenge{
		container:      container,
		postgresDB:     postgresDB,
		rs:             rs,
		serviceProfile: serviceProfile,
		serviceConfig:  serviceConfig,
	}
	service.catalog.Store(&ChallengeCatalog{Entries: map[string]*models.Challenge{}})
	return service, nil
}

// Reload replaces the catalog snapshot from storage.
func (service *ServiceChallenge) Reload(ctx context.Context) error {
	rows, err := datastore.ListEnabledChallenges(ctx, service.postgresDB)
	if err != nil {
		return err
	}

	entries := make(map[string]*models.Challenge, len(rows))
	for _, c := range rows {
		entries[c.ID] = c
	}

	service.catalog.Store(&ChallengeCatalog{Entries: entries, LoadedAt: time.Now()})
	log.Println("challenge catalog loaded:", len(entries), "entries")
	return nil
}

func (service *ServiceChallenge) Catalog() *ChallengeCatalog {
	return service.catalog.Load()
}

// UpdateProgress advances every active challenge tracking the action. Partial
// progress always persists; rewards fire only on the call that flips the
// completed flag.
func (service *ServiceChallenge) UpdateProgress(ctx context.Context, profile *models.Profile, action models.ChallengeAction, amount int64) ([]ChallengeCompletion, error) {
	key, ok := models.ActionRequirementKeys[action]
	if !ok {
		return nil, errorx.Wrap(fmt.Errorf("unknown challenge action %q", action), errorx.Invalid)
	}
	if amount <= 0 {
		return nil, nil
	}

	catalog := service.Catalog()
	now := time.Now()

	var completions []ChallengeCompletion
	for _, challenge := range catalog.Entries {
		if !challenge.ActiveAt(now, profile.GuildID) {
			continue
		}
		if _, tracks := challenge.Requirements[key]; !tracks {
			continue
		}

		row, err := service.loadOrCreateProgress(ctx, profile.UserID, profile.GuildID, challenge.ID)
		if err != nil {
			log.Println("challenge progress:", challenge.ID, err)
			continue
		}

		if row.Progress == nil {
			row.Progress = map[string]int64{}
		}
		row.Progress[key] += amount

		if err := datastore.SaveUserChallenge(ctx, service.postgresDB, row); err != nil {
			log.Println("challenge progress save:", challenge.ID, err)
			continue
		}

		if !completableNow(challenge, row) {
			continue
		}

		won, err := datastore.MarkUserChallengeCompleted(ctx, service.postgresDB, row.ID, now)
		if err != nil {
			log.Println("challenge completion:", challenge.ID, err)
			continue
		}
		if !won {
			// a racing call flipped the flag first
			continue
		}

		row.Completed = true
		row.CompletedAt = &now
		row.CompletionCount++

		if err := datastore.IncrementChallengeCompletedBy(ctx, service.postgresDB, challenge.ID); err != nil {
			log.Println("challenge counter:", challenge.ID, err)
		}

		completions = append(completions, ChallengeCompletion{Challenge: challenge, UserChallenge: row})
	}

	if len(completions) > 0 {
		err := service.serviceProfile.MutateProfile(ctx, profile, func(locked *models.Profile) {
			for _, completion := range completions {
				ApplyRewards(locked, completion.Challenge.Rewards, now)
				locked.CompletedChallenges++
			}
		})
		if err != nil {
			return completions, err
		}
	}

	return completions, nil
}

// completableNow gates reward application: a completed row never fires again,
// and a row at the instance's completion cap stays closed even if the flag
// were reset by an admin wipe.
func completableNow(challenge *models.Challenge, row *models.UserChallenge) bool {
	if row.Completed {
		return false
	}
	if challenge.MaxCompletions > 0 && row.CompletionCount >= challenge.MaxCompletions {
		return false
	}
	return row.MetAllRequirements(challenge)
}

func (service *ServiceChallenge) loadOrCreateProgress(ctx context.Context, userID, guildID, challengeID string) (*models.UserChallenge, error) {
	row, err := datastore.GetUserChallenge(ctx, service.postgresDB, userID, guildID, challengeID)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	fresh := &models.UserChallenge{
		UserID:      userID,
		GuildID:     guildID,
		ChallengeID: challengeID,
		Progress:    map[string]int64{},
	}
	won, err := datastore.InsertUserChallengeIfAbsent(ctx, service.postgresDB, fresh)
	if err != nil {
		return nil, err
	}
	if won {
		return fresh, nil
	}

	// lost the create race; the winner's row is authoritative
	return datastore.GetUserChallenge(ctx, service.postgresDB, userID, guildID, challengeID)
}

// Regenerate replaces the period's instances with a fresh random pick from
// the template library. Instance ids are deterministic per template and
// period start, so a retried job upserts rather than duplicates.
func (service *ServiceChallenge) Regenerate(ctx context.Context, challengeType models.ChallengeType) error {
	mutex := service.rs.NewMutex(LockKeyCronJob("challenge-regen-" + string(challengeType)))
	if err := mutex.TryLock(); err != nil {
		return errorx.Wrap(ErrCronJobLock, errorx.RateLimiting)
	}

	// nolint:errcheck
	defer mutex.Unlock()

	now := time.Now().UTC()
	var templates []ChallengeTemplate
	var start, end time.Time
	var count int

	switch challengeType {
	case models.ChallengeDaily:
		templates = dailyTemplates
		start = pkg.StartOfDay(now)
		end = start.AddDate(0, 0, 1)
		count, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_DAILY_CHALLENGE_COUNT, DEFAULT_DAILY_CHALLENGE_COUNT)
	case models.ChallengeWeekly:
		templates = weeklyTemplates
		start = pkg.StartOfWeek(now)
		end = start.AddDate(0, 0, 7)
		count, _ = service.serviceConfig.GetIntConfig(ctx, CONFIG_WEEKLY_CHALLENGE_COUNT, DEFAULT_WEEKLY_CHALLENGE_COUNT)
	case models.ChallengeMonthly:
		templates = monthlyTemplates
		start = pkg.StartOfMonth(now)
		end = start.AddDate(0, 1, 0)
		count = 1
	default:
		return fmt.Errorf("cannot regenerate challenge type %q", challengeType)
	}

	picked, err := pickTemplates(templates, count)
	if err != nil {
		return err
	}

	for _, template := range picked {
		instance := buildChallengeInstance(template, challengeType, start, end)
		if err := datastore.UpsertChallenge(ctx, service.postgresDB, instance); err != nil {
			return err
		}
	}

	log.Println("Regenerated challenges:", "type:", challengeType, "count:", len(picked))
	return service.Reload(ctx)
}

// pickTemplates draws up to count distinct templates, weight-skewed.
func pickTemplates(templates []ChallengeTemplate, count int) ([]ChallengeTemplate, error) {
	if count >= len(templates) {
		return templates, nil
	}

	remaining := append([]ChallengeTemplate(nil), templates...)
	picked := make([]ChallengeTemplate, 0, count)
	for len(picked) < count {
		choices := make([]weightedrand.Choice[int, int], 0, len(remaining))
		for i, t := range remaining {
			choices = append(choices, weightedrand.NewChoice(i, t.Weight))
		}
		chooser, err := weightedrand.NewChooser(choices...)
		if err != nil {
			return nil, err
		}

		i := chooser.Pick()
		picked = append(picked, remaining[i])
		remaining = append(remaining[:i], remaining[i+1:]...)
	}
	return picked, nil
}

func buildChallengeInstance(template ChallengeTemplate, challengeType models.ChallengeType, start, end time.Time) *models.Challenge {
	return &models.Challenge{
		ID:           fmt.Sprintf("%s-%s-%s", challengeType, start.Format("2006-01-02"), template.Slug),
		Title:        template.Title,
		Description:  template.Description,
		Type:         challengeType,
		Requirements: template.Requirements,
		Rewards:      template.Rewards,
		StartDate:    start,
		EndDate:      end,
		// generated instances are one-shot; repeatable specials are seeded
		// out-of-band with a higher cap
		MaxCompletions: 1,
		Enabled:        true,
	}
}

// CleanupExpired deletes finished instances of the period along with their
// per-user progress rows.
func (service *ServiceChallenge) CleanupExpired(ctx context.Context, challengeType models.ChallengeType) error {
	now := time.Now().UTC()

	ids, err := datastore.ListExpiredChallengeIDs(ctx, service.postgresDB, challengeType, now)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	if _, err := datastore.DeleteUserChallengesFor(ctx, service.postgresDB, ids); err != nil {
		return err
	}

	deleted, err := datastore.DeleteExpiredChallenges(ctx, service.postgresDB, challengeType, now)
	if err != nil {
		return err
	}

	log.Println("Cleaned up challenges:", "type:", challengeType, "deleted:", deleted)
	return service.Reload(ctx)
}

// GetChallengesWithStatus decorates active challenges with the user's
// progress for the read API.
func (service *ServiceChallenge) GetChallengesWithStatus(ctx context.Context, userID, guildID string) ([]*models.ChallengeWithStatus, error) {
	catalog := service.Catalog()
	now := time.Now()

	rows, err := datastore.GetUserChallenges(ctx, service.postgresDB, userID, guildID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.UserChallenge, len(rows))
	for _, r := range rows {
		byID[r.ChallengeID] = r
	}

	out := make([]*models.ChallengeWithStatus, 0, len(catalog.Entries))
	for _, challenge := range catalog.Entries {
		if !challenge.ActiveAt(now, guildID) {
			continue
		}

		status := &models.ChallengeWithStatus{Challenge: *challenge}
		if row, ok := byID[challenge.ID]; ok {
			status.Progress = row.Progress
			status.Completed = row.Completed
			status.CompletedAt = row.CompletedAt
		}
		out = append(out, status)
	}
	return out, nil
}
